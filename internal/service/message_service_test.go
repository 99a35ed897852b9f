package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	carol := store.addUser("carol")
	events := &memEvents{}
	svc := NewMessageService(memUsers{store}, memMessages{store}, events, testLog)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	ctx := context.Background()

	msg, err := svc.Send(ctx, alice, "bob", "hi bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.RecipientID)

	require.Len(t, events.published, 1)
	assert.Equal(t, bob.ID, events.published[0].userID)
	assert.Equal(t, hub.EventMessage, events.published[0].event.Type)
	assert.Equal(t, MessageEvent{
		ID:                msg.ID,
		Text:              "hi bob",
		SendAt:            "2024-01-02 03:04:05",
		SenderUsername:    "alice",
		RecipientUsername: "bob",
	}, events.published[0].event.Payload)

	_, err = svc.Send(ctx, carol, "bob", "hello from carol")
	require.NoError(t, err)
	_, err = svc.Send(ctx, bob, "alice", "hi alice")
	require.NoError(t, err)

	inbox, err := svc.Inbox(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)

	fromAlice, err := svc.FromSender(ctx, bob, "alice")
	require.NoError(t, err)
	require.Len(t, fromAlice, 1)
	assert.Equal(t, "hi bob", fromAlice[0].Text)

	_, err = svc.FromSender(ctx, bob, "ghost")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestMessageService_SendRejects(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice")
	store.addUser("bob")
	events := &memEvents{}
	svc := NewMessageService(memUsers{store}, memMessages{store}, events, testLog)
	ctx := context.Background()

	tests := []struct {
		name      string
		recipient string
		text      string
		wantKind  apperror.Kind
	}{
		{name: "blank text", recipient: "bob", text: "   ", wantKind: apperror.KindValidation},
		{name: "too long", recipient: "bob", text: strings.Repeat("я", MaxMessageLength+1), wantKind: apperror.KindValidation},
		{name: "unknown recipient", recipient: "ghost", text: "hello", wantKind: apperror.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(ctx, alice, tt.recipient, tt.text)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
		})
	}

	assert.Empty(t, store.messages)
	assert.Empty(t, events.published)

	_, err := svc.Send(ctx, alice, "bob", strings.Repeat("я", MaxMessageLength))
	assert.NoError(t, err)
}
