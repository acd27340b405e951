package service

import (
	"log/slog"
	"sync"

	"github.com/connectwave/signaling/internal/domain"
	"github.com/connectwave/signaling/internal/registry"
)

// RelayService routes signaling events between connected clients: it
// mutates the room registry and re-broadcasts derived events to the
// right audience (whole room, one peer, or the sender alone).
//
// A single mutex serializes event handling, so every broadcast is
// enqueued while the registry still reflects exactly the state the
// triggering mutation produced, and broadcasts for one room can never
// reorder. Delivery itself is each session's own write pump draining
// its buffer, so slow peers do not stall the relay.
type RelayService struct {
	registry *registry.Registry
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionState
}

type sessionState struct {
	sess Session
	// rooms this connection joined, with the participant id it used.
	rooms map[string]string
}

func NewRelayService(reg *registry.Registry, log *slog.Logger) *RelayService {
	if log == nil {
		log = slog.Default()
	}
	return &RelayService{
		registry: reg,
		log:      log,
		sessions: make(map[string]*sessionState),
	}
}

// Connect registers a fresh connection with the relay. It must be
// called before any HandleEvent for that session.
func (s *RelayService) Connect(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = &sessionState{
		sess:  sess,
		rooms: make(map[string]string),
	}
	s.log.Info("session connected", slog.String("session_id", sess.ID()))
}

// Disconnect removes the connection from every room it joined and
// broadcasts the updated roster to the rooms that survive. Rooms
// emptied by this departure vanish together with their chat history.
// Safe to call more than once; only the first call does anything.
func (s *RelayService) Disconnect(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	delete(s.sessions, sessionID)

	for roomID, participantID := range st.rooms {
		s.registry.RemoveParticipant(roomID, participantID)
		if !s.registry.HasRoom(roomID) {
			s.log.Info("room deleted",
				slog.String("room_id", roomID),
				slog.String("session_id", sessionID),
			)
			continue
		}
		s.broadcastRoster(roomID, "")
	}
	s.log.Info("session disconnected", slog.String("session_id", sessionID))
}

// HandleEvent applies one inbound event to completion. Events that
// reference unknown rooms or peers, or that target the sender itself,
// are dropped without an answer.
func (s *RelayService) HandleEvent(sessionID string, ev domain.ClientEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return
	}

	switch e := ev.(type) {
	case domain.JoinRoom:
		s.handleJoin(st, sessionID, e)
	case domain.SendMessage:
		s.handleSendMessage(sessionID, e)
	case domain.StartSharing:
		s.handleSharing(sessionID, e.RoomID, e.ID, true)
	case domain.StopSharing:
		s.handleSharing(sessionID, e.RoomID, e.ID, false)
	case domain.WebRTCOffer:
		s.forward(sessionID, e.To, domain.OfferForwarded{From: sessionID, Offer: *e.Offer})
	case domain.WebRTCAnswer:
		s.forward(sessionID, e.To, domain.AnswerForwarded{From: sessionID, Answer: *e.Answer})
	case domain.WebRTCICECandidate:
		s.forward(sessionID, e.To, domain.CandidateForwarded{From: sessionID, Candidate: *e.Candidate})
	}
}

// RoomParticipants returns the current roster snapshot of a room.
func (s *RelayService) RoomParticipants(roomID string) ([]domain.Participant, bool) {
	return s.registry.ListParticipants(roomID)
}

func (s *RelayService) handleJoin(st *sessionState, sessionID string, e domain.JoinRoom) {
	const op = "service.relay.join"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", e.RoomID),
		slog.String("session_id", sessionID),
	)

	s.registry.EnsureRoom(e.RoomID)
	added := s.registry.AddParticipant(e.RoomID, domain.NewParticipant(e.ID, e.Name))
	st.rooms[e.RoomID] = e.ID

	if added {
		log.Info("participant joined", slog.String("name", e.Name), slog.String("id", e.ID))
	}

	s.broadcastRoster(e.RoomID, "")

	history, ok := s.registry.ListMessages(e.RoomID)
	if ok {
		st.sess.Enqueue(domain.MessagesHistory{RoomID: e.RoomID, Messages: history})
	}
}

func (s *RelayService) handleSendMessage(sessionID string, e domain.SendMessage) {
	if !s.registry.AppendMessage(e.RoomID, e.Message) {
		return
	}
	// The sender already has its own local copy.
	s.broadcastRoom(e.RoomID, domain.MessageReceived{Message: e.Message}, sessionID)
}

func (s *RelayService) handleSharing(sessionID, roomID, participantID string, sharing bool) {
	if !s.registry.HasRoom(roomID) {
		return
	}
	s.registry.SetSharing(roomID, participantID, sharing)
	s.broadcastRoster(roomID, "")

	var hint domain.ServerEvent
	if sharing {
		hint = domain.SharingStarted{RoomID: roomID, ID: participantID}
	} else {
		hint = domain.SharingStopped{RoomID: roomID, ID: participantID}
	}
	s.broadcastRoom(roomID, hint, sessionID)
}

func (s *RelayService) forward(from, to string, ev domain.ServerEvent) {
	if from == to {
		// Self-addressed negotiation feeds back into the sender's own
		// state machine; drop it.
		return
	}
	st, ok := s.sessions[to]
	if !ok {
		return
	}
	if !st.sess.Enqueue(ev) {
		s.log.Debug("dropping forwarded event",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("type", string(ev.Kind())),
		)
	}
}

// broadcastRoster sends the post-mutation roster to every member of the
// room. Must be called with s.mu held.
func (s *RelayService) broadcastRoster(roomID, exclude string) {
	roster, ok := s.registry.ListParticipants(roomID)
	if !ok {
		return
	}
	s.broadcastRoom(roomID, domain.ParticipantsUpdated{RoomID: roomID, Roster: roster}, exclude)
}

// broadcastRoom enqueues ev to every session that joined the room,
// except the excluded one. Must be called with s.mu held.
func (s *RelayService) broadcastRoom(roomID string, ev domain.ServerEvent, exclude string) {
	for id, st := range s.sessions {
		if id == exclude {
			continue
		}
		if _, ok := st.rooms[roomID]; !ok {
			continue
		}
		if !st.sess.Enqueue(ev) {
			s.log.Debug("dropping broadcast event",
				slog.String("session_id", id),
				slog.String("type", string(ev.Kind())),
			)
		}
	}
}
