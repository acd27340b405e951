package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/connectwave/signaling/internal/domain"
	"github.com/pion/webrtc/v3"
)

// RosterEntry is the wire form of a participant in update-participants.
// IsMuted and IsCameraOff are always reported as defaults: the server
// is not authoritative for those two flags, the client tracks them
// locally.
type RosterEntry struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	IsSharingScreen bool      `json:"isSharingScreen"`
	JoinTime        time.Time `json:"joinTime"`
	IsMuted         bool      `json:"isMuted"`
	IsCameraOff     bool      `json:"isCameraOff"`
}

// ToRoster converts a roster snapshot to its wire form, preserving
// join order.
func ToRoster(participants []domain.Participant) []RosterEntry {
	out := make([]RosterEntry, 0, len(participants))
	for _, p := range participants {
		out = append(out, RosterEntry{
			ID:              p.ID,
			Name:            p.Name,
			IsSharingScreen: p.IsSharingScreen,
			JoinTime:        p.JoinTime,
		})
	}
	return out
}

type connectedPayload struct {
	ID string `json:"id"`
}

type sharingPayload struct {
	RoomID string `json:"roomId"`
	ID     string `json:"id"`
}

type offerPayload struct {
	From  string                    `json:"from"`
	Offer webrtc.SessionDescription `json:"offer"`
}

type answerPayload struct {
	From   string                    `json:"from"`
	Answer webrtc.SessionDescription `json:"answer"`
}

type candidatePayload struct {
	From      string                  `json:"from"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

// EncodeServerEvent turns a relay event into its wire envelope.
func EncodeServerEvent(ev domain.ServerEvent) (domain.Envelope, error) {
	var payload any

	switch e := ev.(type) {
	case domain.Connected:
		payload = connectedPayload{ID: e.ID}
	case domain.ParticipantsUpdated:
		payload = ToRoster(e.Roster)
	case domain.MessagesHistory:
		payload = e.Messages
	case domain.MessageReceived:
		payload = e.Message
	case domain.SharingStarted:
		payload = sharingPayload{RoomID: e.RoomID, ID: e.ID}
	case domain.SharingStopped:
		payload = sharingPayload{RoomID: e.RoomID, ID: e.ID}
	case domain.OfferForwarded:
		payload = offerPayload{From: e.From, Offer: e.Offer}
	case domain.AnswerForwarded:
		payload = answerPayload{From: e.From, Answer: e.Answer}
	case domain.CandidateForwarded:
		payload = candidatePayload{From: e.From, Candidate: e.Candidate}
	default:
		return domain.Envelope{}, fmt.Errorf("unsupported server event %T", ev)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Envelope{Event: ev.Kind(), Data: data}, nil
}
