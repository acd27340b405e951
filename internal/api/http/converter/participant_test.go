package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectwave/signaling/internal/domain"
)

func TestToRosterNormalizesPresentationFlags(t *testing.T) {
	joined := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roster := ToRoster([]domain.Participant{
		{ID: "c1", Name: "Alice", IsSharingScreen: true, JoinTime: joined},
		{ID: "c2", Name: "Bob", JoinTime: joined.Add(time.Second)},
	})

	require.Len(t, roster, 2)
	assert.Equal(t, "c1", roster[0].ID)
	assert.True(t, roster[0].IsSharingScreen)
	assert.Equal(t, "c2", roster[1].ID)

	// Mute and camera state are client-side only; the server always
	// reports the defaults.
	for _, entry := range roster {
		assert.False(t, entry.IsMuted)
		assert.False(t, entry.IsCameraOff)
	}
}

func TestEncodeRosterUpdate(t *testing.T) {
	joined := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	env, err := EncodeServerEvent(domain.ParticipantsUpdated{
		RoomID: "r1",
		Roster: []domain.Participant{{ID: "c1", Name: "Alice", JoinTime: joined}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventUpdateParticipants, env.Event)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0]["id"])
	assert.Equal(t, false, entries[0]["isMuted"])
	assert.Equal(t, false, entries[0]["isCameraOff"])
	assert.Contains(t, entries[0], "joinTime")
}

func TestEncodeEmptyHistoryIsArray(t *testing.T) {
	env, err := EncodeServerEvent(domain.MessagesHistory{RoomID: "r1", Messages: []domain.ChatMessage{}})
	require.NoError(t, err)
	assert.Equal(t, domain.EventUpdateMessages, env.Event)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestEncodeReceiveMessage(t *testing.T) {
	env, err := EncodeServerEvent(domain.MessageReceived{
		Message: domain.ChatMessage{ID: "m1", SenderID: "c1", SenderName: "Alice", Text: "hi", Timestamp: "2025-06-01T12:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventReceiveMessage, env.Event)
	assert.JSONEq(t, `{"id":"m1","senderId":"c1","senderName":"Alice","text":"hi","timestamp":"2025-06-01T12:00:00Z"}`, string(env.Data))
}

func TestEncodeConnected(t *testing.T) {
	env, err := EncodeServerEvent(domain.Connected{ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventConnected, env.Event)
	assert.JSONEq(t, `{"id":"c1"}`, string(env.Data))
}

func TestEncodeSharingHints(t *testing.T) {
	env, err := EncodeServerEvent(domain.SharingStarted{RoomID: "r1", ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventStartSharing, env.Event)
	assert.JSONEq(t, `{"roomId":"r1","id":"c1"}`, string(env.Data))

	env, err = EncodeServerEvent(domain.SharingStopped{RoomID: "r1", ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, domain.EventStopSharing, env.Event)
}
