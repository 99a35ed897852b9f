package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTargetUser(t *testing.T) {
	h := NewHub()
	alice := make(Client, 1)
	bob := make(Client, 1)
	h.Subscribe(1, alice)
	h.Subscribe(2, bob)

	h.Publish(1, Event{Type: EventMessage, Payload: map[string]string{"text": "hi"}})

	require.Len(t, alice, 1)
	assert.Len(t, bob, 0)

	var got Event
	require.NoError(t, json.Unmarshal(<-alice, &got))
	assert.Equal(t, EventMessage, got.Type)
	assert.Equal(t, map[string]any{"text": "hi"}, got.Payload)
}

func TestHub_PublishDoesNotBlockOnFullClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe(1, c)

	h.Publish(1, Event{Type: EventMessage})
	h.Publish(1, Event{Type: EventMessage})

	assert.Len(t, c, 1)
}

func TestHub_UnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	first := make(Client, 1)
	second := make(Client, 1)
	h.Subscribe(7, first)
	h.Subscribe(7, second)
	assert.Equal(t, 2, h.Connected(7))

	h.Unsubscribe(7, first)
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, h.Connected(7))

	h.Unsubscribe(7, second)
	assert.Equal(t, 0, h.Connected(7))

	// unknown clients are ignored
	h.Unsubscribe(7, make(Client))
	h.Publish(7, Event{Type: EventMessage})
}
