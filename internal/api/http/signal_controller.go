package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/connectwave/signaling/internal/config"
	"github.com/connectwave/signaling/internal/domain"
	"github.com/connectwave/signaling/internal/service"
	"github.com/connectwave/signaling/lib/logger/sl"
)

type SignalController struct {
	relay    service.RelayInteractor
	cfg      config.WSConfig
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewSignalController(relay service.RelayInteractor, cfg config.WSConfig, log *slog.Logger) *SignalController {
	return &SignalController{
		relay: relay,
		cfg:   cfg,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS upgrades the request and serves the connection until it
// drops. Each connection gets a fresh server-assigned id, announced
// first thing via the connected event; reconnecting clients get a new
// id and count as new participants.
func (c *SignalController) HandleWS(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	cl := newClient(uuid.NewString(), conn, c.relay, c.log, c.cfg.ReadLimit, c.cfg.PingPeriod, c.cfg.SendBuffer)

	c.relay.Connect(cl)
	cl.Enqueue(domain.Connected{ID: cl.ID()})

	go cl.writePump()
	cl.readPump()
}
