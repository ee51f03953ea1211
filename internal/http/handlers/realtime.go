package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prashantttzz/experimentlabs/internal/realtime"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Stream holds the connection open and pushes the caller's events until the
// client disconnects.
func (rh *RealtimeHandler) Stream(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	client := rh.hub.NewClient(userID)
	defer rh.hub.CloseClient(client)
	rh.hub.ServeHTTP(c.Writer, c.Request, client)
}
