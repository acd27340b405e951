package domain

import "time"

// Room holds the live state of one meeting: the participants in join
// order and the full chat history. A room exists only while it has at
// least one participant; the registry that owns it deletes it together
// with its history when the last participant leaves.
//
// Room carries no locking of its own. All access goes through the
// registry, which guards it.
type Room struct {
	ID           string
	Participants []*Participant
	Messages     []ChatMessage
	CreatedAt    time.Time
}

func NewRoom(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}

// AddParticipant appends p preserving insertion order. A participant
// with the same id already in the room makes this a no-op, guarding
// against duplicate joins.
func (r *Room) AddParticipant(p *Participant) bool {
	if r.FindParticipant(p.ID) != nil {
		return false
	}
	r.Participants = append(r.Participants, p)
	return true
}

// RemoveParticipant removes the participant with the given id and
// reports whether it was present.
func (r *Room) RemoveParticipant(id string) bool {
	for i, p := range r.Participants {
		if p.ID == id {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) FindParticipant(id string) *Participant {
	for _, p := range r.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) AppendMessage(msg ChatMessage) {
	r.Messages = append(r.Messages, msg)
}

func (r *Room) Empty() bool {
	return len(r.Participants) == 0
}
