package http

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/connectwave/signaling/internal/api/http/converter"
	"github.com/connectwave/signaling/internal/domain"
	"github.com/connectwave/signaling/internal/service"
	"github.com/connectwave/signaling/lib/logger/sl"
)

// Time allowed to write one message to the peer.
const writeWait = 10 * time.Second

// client wraps one websocket connection. One goroutine reads
// (readPump), one writes (writePump); the relay talks to the client
// only through the buffered send channel, so a slow connection never
// blocks event handling.
type client struct {
	id         string
	conn       *websocket.Conn
	send       chan domain.ServerEvent
	relay      service.RelayInteractor
	log        *slog.Logger
	readLimit  int64
	pingPeriod time.Duration
	pongWait   time.Duration
}

func newClient(id string, conn *websocket.Conn, relay service.RelayInteractor, log *slog.Logger, readLimit int64, pingPeriod time.Duration, sendBuffer int) *client {
	return &client{
		id:         id,
		conn:       conn,
		send:       make(chan domain.ServerEvent, sendBuffer),
		relay:      relay,
		log:        log.With(slog.String("session_id", id)),
		readLimit:  readLimit,
		pingPeriod: pingPeriod,
		// Must be longer than pingPeriod so a live peer always gets a
		// ping in before the deadline.
		pongWait: pingPeriod * 10 / 9,
	}
}

func (c *client) ID() string { return c.id }

func (c *client) Enqueue(ev domain.ServerEvent) bool {
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// readPump reads frames until the connection dies, dispatching decoded
// events to the relay. Malformed frames are dropped without an answer.
// It runs the disconnect path exactly once on exit, before the
// connection is torn down, so remaining peers always get the roster
// update.
func (c *client) readPump() {
	defer func() {
		c.relay.Disconnect(c.id)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.readLimit)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read failed", sl.Err(err))
			}
			return
		}

		ev, err := domain.DecodeClientEvent(raw)
		if err != nil {
			c.log.Debug("dropping inbound event", sl.Err(err))
			continue
		}
		c.relay.HandleEvent(c.id, ev)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with periodic pings.
func (c *client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			env, err := converter.EncodeServerEvent(ev)
			if err != nil {
				c.log.Error("failed to encode event", sl.Err(err))
				continue
			}
			if err := c.conn.WriteJSON(env); err != nil {
				c.log.Debug("write failed", sl.Err(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
