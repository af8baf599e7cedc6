package controllers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/guestlist-app/live"
	"github.com/yeremiapane/guestlist-app/middlewares"
	"github.com/yeremiapane/guestlist-app/utils"
)

type LiveController struct {
	Hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewLiveController accepts upgrades from the given origins; an empty list or
// "*" accepts any origin.
func NewLiveController(hub *live.Hub, origins []string) *LiveController {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return &LiveController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

// Feed -> websocket endpoint for staff screens
func (lc *LiveController) Feed(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)

	ws, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	lc.Hub.Serve(ws, role)
}
