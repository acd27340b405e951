package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/connectwave/signaling/internal/api/http/converter"
	"github.com/connectwave/signaling/internal/service"
)

type RoomController struct {
	relay service.RelayInteractor
	log   *slog.Logger
}

func NewRoomController(relay service.RelayInteractor, log *slog.Logger) *RoomController {
	return &RoomController{relay: relay, log: log}
}

// ListParticipants returns the current roster of a live room. Room ids
// are opaque strings chosen by clients; a room that has no participants
// does not exist.
func (c *RoomController) ListParticipants(ctx *gin.Context) {
	roomID := ctx.Param("roomID")

	participants, ok := c.relay.RoomParticipants(roomID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"participants": converter.ToRoster(participants)})
}
