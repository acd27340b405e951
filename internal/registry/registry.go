package registry

import (
	"sync"

	"github.com/connectwave/signaling/internal/domain"
)

// Registry is the process-wide map from room id to live room state.
// It is owned by the signaling relay and never persisted; full state is
// lost on restart. A room exists here iff it has at least one
// participant: the last removal deletes the room together with its chat
// history in the same critical section.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*domain.Room),
	}
}

// EnsureRoom creates an empty room for the given id if none exists.
// Idempotent.
func (r *Registry) EnsureRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = domain.NewRoom(roomID)
	}
}

// AddParticipant appends p to the room's roster, preserving insertion
// order. Returns false when the room does not exist or a participant
// with the same id is already listed.
func (r *Registry) AddParticipant(roomID string, p *domain.Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	return room.AddParticipant(p)
}

// RemoveParticipant removes the participant by id. When the roster
// becomes empty the room and its messages are deleted in the same step.
// Returns false when the room or participant is unknown.
func (r *Registry) RemoveParticipant(roomID, participantID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	removed := room.RemoveParticipant(participantID)
	if removed && room.Empty() {
		delete(r.rooms, roomID)
	}
	return removed
}

// SetSharing flips the screen-sharing flag of one participant. Returns
// false when the room or participant is unknown.
func (r *Registry) SetSharing(roomID, participantID string, sharing bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	p := room.FindParticipant(participantID)
	if p == nil {
		return false
	}
	p.IsSharingScreen = sharing
	return true
}

// AppendMessage appends msg to the room's chat log. A message for a
// room with nobody present is dropped, not queued.
func (r *Registry) AppendMessage(roomID string, msg domain.ChatMessage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	room.AppendMessage(msg)
	return true
}

// HasRoom reports whether the room currently exists.
func (r *Registry) HasRoom(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

// ListParticipants returns a snapshot of the roster in join order.
// The second result is false when the room does not exist.
func (r *Registry) ListParticipants(roomID string) ([]domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, false
	}
	out := make([]domain.Participant, 0, len(room.Participants))
	for _, p := range room.Participants {
		out = append(out, *p)
	}
	return out, true
}

// ListMessages returns a snapshot of the room's chat history in append
// order. The second result is false when the room does not exist.
func (r *Registry) ListMessages(roomID string) ([]domain.ChatMessage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, false
	}
	out := make([]domain.ChatMessage, len(room.Messages))
	copy(out, room.Messages)
	return out, true
}

// RoomCount reports the number of live rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
