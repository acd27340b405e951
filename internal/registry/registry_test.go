package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectwave/signaling/internal/domain"
)

func TestEnsureRoomIsIdempotent(t *testing.T) {
	reg := New()

	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))

	reg.EnsureRoom("r1")

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	assert.Len(t, participants, 1)
	assert.Equal(t, 1, reg.RoomCount())
}

func TestAddParticipantPreservesJoinOrder(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("c%d", i)
		require.True(t, reg.AddParticipant("r1", domain.NewParticipant(id, "user-"+id)))
	}

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	require.Len(t, participants, 5)
	for i, p := range participants {
		assert.Equal(t, fmt.Sprintf("c%d", i), p.ID)
	}
}

func TestAddParticipantDuplicateJoinGuard(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")

	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))
	assert.False(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Impostor")))

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	require.Len(t, participants, 1)
	assert.Equal(t, "Alice", participants[0].Name)
}

func TestAddParticipantUnknownRoom(t *testing.T) {
	reg := New()
	assert.False(t, reg.AddParticipant("nope", domain.NewParticipant("c1", "Alice")))
}

func TestRemoveLastParticipantDeletesRoomAndHistory(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))
	require.True(t, reg.AppendMessage("r1", domain.ChatMessage{ID: "m1", Text: "hello"}))

	require.True(t, reg.RemoveParticipant("r1", "c1"))

	assert.False(t, reg.HasRoom("r1"))
	assert.Equal(t, 0, reg.RoomCount())

	// A fresh room under the same id starts clean.
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c2", "Bob")))

	messages, ok := reg.ListMessages("r1")
	require.True(t, ok)
	assert.Empty(t, messages)

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	require.Len(t, participants, 1)
	assert.Equal(t, "c2", participants[0].ID)
}

func TestRemoveParticipantKeepsPopulatedRoom(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c2", "Bob")))

	require.True(t, reg.RemoveParticipant("r1", "c1"))

	assert.True(t, reg.HasRoom("r1"))
	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	require.Len(t, participants, 1)
	assert.Equal(t, "c2", participants[0].ID)
}

func TestRemoveParticipantUnknown(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))

	assert.False(t, reg.RemoveParticipant("r1", "ghost"))
	assert.False(t, reg.RemoveParticipant("nope", "c1"))
	assert.True(t, reg.HasRoom("r1"))
}

func TestAppendMessageUnknownRoomIsDropped(t *testing.T) {
	reg := New()
	assert.False(t, reg.AppendMessage("nope", domain.ChatMessage{ID: "m1", Text: "hi"}))
}

func TestListMessagesKeepsAppendOrder(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("m%d", i)
		require.True(t, reg.AppendMessage("r1", domain.ChatMessage{ID: id, Text: id}))
	}

	messages, ok := reg.ListMessages("r1")
	require.True(t, ok)
	require.Len(t, messages, 3)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("m%d", i), msg.ID)
	}
}

func TestSetSharing(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))

	require.True(t, reg.SetSharing("r1", "c1", true))

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	assert.True(t, participants[0].IsSharingScreen)

	require.True(t, reg.SetSharing("r1", "c1", false))
	participants, _ = reg.ListParticipants("r1")
	assert.False(t, participants[0].IsSharingScreen)

	assert.False(t, reg.SetSharing("r1", "ghost", true))
	assert.False(t, reg.SetSharing("nope", "c1", true))
}

func TestSnapshotsAreDetached(t *testing.T) {
	reg := New()
	reg.EnsureRoom("r1")
	require.True(t, reg.AddParticipant("r1", domain.NewParticipant("c1", "Alice")))

	participants, ok := reg.ListParticipants("r1")
	require.True(t, ok)
	participants[0].Name = "Mallory"
	participants[0].IsSharingScreen = true

	fresh, _ := reg.ListParticipants("r1")
	assert.Equal(t, "Alice", fresh[0].Name)
	assert.False(t, fresh[0].IsSharingScreen)
}
