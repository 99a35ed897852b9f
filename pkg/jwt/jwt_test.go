package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestMaker_GenerateAndParse(t *testing.T) {
	ttl := 14 * 24 * time.Hour
	maker := NewMaker(testSecret, ttl)

	for _, username := range []string{"alice", "bob_the_builder", "user123"} {
		t.Run(username, func(t *testing.T) {
			token, err := maker.GenerateToken(username)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			got, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, username, got)
		})
	}
}

func TestMaker_ParseToken_Rejects(t *testing.T) {
	maker := NewMaker(testSecret, time.Hour)
	valid, err := maker.GenerateToken("alice")
	require.NoError(t, err)

	expiredMaker := NewMaker(testSecret, time.Hour)
	expiredMaker.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredMaker.GenerateToken("alice")
	require.NoError(t, err)

	otherSecret, err := NewMaker("another-secret", time.Hour).GenerateToken("alice")
	require.NoError(t, err)

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "invalid.token.here"},
		{name: "tampered", token: valid + "x"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "alg none", token: unsigned},
		{name: "no expiry", token: noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := maker.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, username)
		})
	}
}
