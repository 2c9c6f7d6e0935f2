package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Cavista-Hackathon-2025/carepulse/services"
)

type RealtimeController struct {
	hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// NotificationsWS upgrades the request and streams notification events for
// the authenticated user until the client disconnects.
func (rc *RealtimeController) NotificationsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := &services.WSClient{UserID: c.GetUint("userID"), Conn: conn}
	rc.hub.Register(client)

	// keep connections alive through proxies that drop idle sockets
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.hub.Unregister(client)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.hub.Unregister(client)
			return
		}
	}
}
