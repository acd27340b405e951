package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v3"
)

// ErrMalformedEvent marks an inbound frame that cannot be dispatched:
// unknown event name, undecodable payload, or a missing required field.
// The relay drops such events without answering the sender.
var ErrMalformedEvent = errors.New("malformed event")

type EventType string

// Client → server events.
const (
	EventJoinRoom           EventType = "join-room"
	EventSendMessage        EventType = "send-message"
	EventStartSharing       EventType = "start-sharing"
	EventStopSharing        EventType = "stop-sharing"
	EventWebRTCOffer        EventType = "webrtc-offer"
	EventWebRTCAnswer       EventType = "webrtc-answer"
	EventWebRTCICECandidate EventType = "webrtc-ice-candidate"
)

// Server → client events.
const (
	EventConnected          EventType = "connected"
	EventUpdateParticipants EventType = "update-participants"
	EventUpdateMessages     EventType = "update-messages"
	EventReceiveMessage     EventType = "receive-message"
)

// Envelope is the wire frame for every event in both directions:
// an event name plus a JSON payload.
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ClientEvent is the closed set of inbound event kinds. The relay
// dispatches on it with a single exhaustive type switch, so adding a
// kind here forces every dispatch site to handle it.
type ClientEvent interface {
	clientEvent()
}

type JoinRoom struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
	ID     string `json:"id"`
}

type SendMessage struct {
	RoomID  string      `json:"roomId"`
	Message ChatMessage `json:"message"`
}

type StartSharing struct {
	RoomID string `json:"roomId"`
	ID     string `json:"id"`
}

type StopSharing struct {
	RoomID string `json:"roomId"`
	ID     string `json:"id"`
}

type WebRTCOffer struct {
	To    string                     `json:"to"`
	Offer *webrtc.SessionDescription `json:"offer"`
}

type WebRTCAnswer struct {
	To     string                     `json:"to"`
	Answer *webrtc.SessionDescription `json:"answer"`
}

type WebRTCICECandidate struct {
	To        string                   `json:"to"`
	Candidate *webrtc.ICECandidateInit `json:"candidate"`
}

func (JoinRoom) clientEvent()           {}
func (SendMessage) clientEvent()        {}
func (StartSharing) clientEvent()       {}
func (StopSharing) clientEvent()        {}
func (WebRTCOffer) clientEvent()        {}
func (WebRTCAnswer) clientEvent()       {}
func (WebRTCICECandidate) clientEvent() {}

// DecodeClientEvent parses a raw inbound frame into one of the
// ClientEvent kinds, validating the fields the relay cannot work
// without. Anything else is reported as ErrMalformedEvent.
func DecodeClientEvent(raw []byte) (ClientEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch env.Event {
	case EventJoinRoom:
		var ev JoinRoom
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.RoomID == "" || ev.ID == "" {
			return nil, fmt.Errorf("%w: join-room requires roomId and id", ErrMalformedEvent)
		}
		return ev, nil
	case EventSendMessage:
		var ev SendMessage
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.RoomID == "" || ev.Message.Text == "" {
			return nil, fmt.Errorf("%w: send-message requires roomId and message text", ErrMalformedEvent)
		}
		return ev, nil
	case EventStartSharing:
		var ev StartSharing
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.RoomID == "" || ev.ID == "" {
			return nil, fmt.Errorf("%w: start-sharing requires roomId and id", ErrMalformedEvent)
		}
		return ev, nil
	case EventStopSharing:
		var ev StopSharing
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.RoomID == "" || ev.ID == "" {
			return nil, fmt.Errorf("%w: stop-sharing requires roomId and id", ErrMalformedEvent)
		}
		return ev, nil
	case EventWebRTCOffer:
		var ev WebRTCOffer
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.To == "" || ev.Offer == nil {
			return nil, fmt.Errorf("%w: webrtc-offer requires to and offer", ErrMalformedEvent)
		}
		return ev, nil
	case EventWebRTCAnswer:
		var ev WebRTCAnswer
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.To == "" || ev.Answer == nil {
			return nil, fmt.Errorf("%w: webrtc-answer requires to and answer", ErrMalformedEvent)
		}
		return ev, nil
	case EventWebRTCICECandidate:
		var ev WebRTCICECandidate
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if ev.To == "" || ev.Candidate == nil {
			return nil, fmt.Errorf("%w: webrtc-ice-candidate requires to and candidate", ErrMalformedEvent)
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("%w: unknown event %q", ErrMalformedEvent, env.Event)
	}
}

// ServerEvent is the closed set of outbound event kinds the relay
// emits. The transport layer encodes them into wire envelopes.
type ServerEvent interface {
	serverEvent()
	Kind() EventType
}

// Connected is sent once right after the websocket upgrade so the
// client learns the connection id it must echo in join-room and that
// peers will use to address negotiation messages to it.
type Connected struct {
	ID string
}

// ParticipantsUpdated carries the full post-mutation roster of a room
// in join order.
type ParticipantsUpdated struct {
	RoomID string
	Roster []Participant
}

// MessagesHistory carries the full chat history of a room; it is sent
// to a joining connection only, before any newer chat events.
type MessagesHistory struct {
	RoomID   string
	Messages []ChatMessage
}

type MessageReceived struct {
	Message ChatMessage
}

// SharingStarted and SharingStopped are the raw UI hints re-broadcast
// alongside the roster update when a participant toggles screen share.
type SharingStarted struct {
	RoomID string
	ID     string
}

type SharingStopped struct {
	RoomID string
	ID     string
}

type OfferForwarded struct {
	From  string
	Offer webrtc.SessionDescription
}

type AnswerForwarded struct {
	From   string
	Answer webrtc.SessionDescription
}

type CandidateForwarded struct {
	From      string
	Candidate webrtc.ICECandidateInit
}

func (Connected) serverEvent()           {}
func (ParticipantsUpdated) serverEvent() {}
func (MessagesHistory) serverEvent()     {}
func (MessageReceived) serverEvent()     {}
func (SharingStarted) serverEvent()      {}
func (SharingStopped) serverEvent()      {}
func (OfferForwarded) serverEvent()      {}
func (AnswerForwarded) serverEvent()     {}
func (CandidateForwarded) serverEvent()  {}

func (Connected) Kind() EventType           { return EventConnected }
func (ParticipantsUpdated) Kind() EventType { return EventUpdateParticipants }
func (MessagesHistory) Kind() EventType     { return EventUpdateMessages }
func (MessageReceived) Kind() EventType     { return EventReceiveMessage }
func (SharingStarted) Kind() EventType      { return EventStartSharing }
func (SharingStopped) Kind() EventType      { return EventStopSharing }
func (OfferForwarded) Kind() EventType      { return EventWebRTCOffer }
func (AnswerForwarded) Kind() EventType     { return EventWebRTCAnswer }
func (CandidateForwarded) Kind() EventType  { return EventWebRTCICECandidate }
