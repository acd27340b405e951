package service

import "github.com/connectwave/signaling/internal/domain"

// Session is one connected client as seen by the relay: an identity
// plus a non-blocking sink for outbound events. The websocket layer
// implements it with a buffered send channel drained by a write pump.
type Session interface {
	ID() string
	// Enqueue hands ev to the session for delivery, never blocking.
	// It reports false when the session's buffer is full and the event
	// was dropped; the next state-syncing broadcast converges the
	// client back to truth.
	Enqueue(ev domain.ServerEvent) bool
}

// RelayInteractor is the inbound surface of the signaling relay.
type RelayInteractor interface {
	Connect(sess Session)
	Disconnect(sessionID string)
	HandleEvent(sessionID string, ev domain.ClientEvent)
	RoomParticipants(roomID string) ([]domain.Participant, bool)
}
