package domain

import "time"

// Participant represents an active member of a room. The ID is the
// connection identifier of the websocket that joined; it is not stable
// across reconnects, so a client that drops and comes back is a brand
// new participant.
type Participant struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	IsSharingScreen bool      `json:"isSharingScreen"`
	JoinTime        time.Time `json:"joinTime"`
}

func NewParticipant(id, name string) *Participant {
	return &Participant{
		ID:       id,
		Name:     name,
		JoinTime: time.Now().UTC(),
	}
}

// ShouldInitiate reports whether self is the side responsible for creating
// and sending the first peer-connection offer to peer. The participant with
// the strictly earlier join time initiates and the later one waits, so two
// clients discovering each other in the same roster update never both send
// an offer. Both sides evaluate this from the join times carried in the
// roster; the server itself does not enforce it.
func ShouldInitiate(self, peer *Participant) bool {
	return self.JoinTime.Before(peer.JoinTime)
}
