package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/skva/kasse/live"
	"github.com/skva/kasse/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveController struct {
	Hub *live.Hub
}

func NewLiveController(hub *live.Hub) *LiveController {
	return &LiveController{Hub: hub}
}

// TillSocket upgrades a till client to a websocket and keeps it registered
// until it disconnects. Traffic is one-way server-to-client; incoming reads
// only serve to detect the close.
func (lc *LiveController) TillSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("live: upgrade failed: %v", err)
		return
	}

	username := c.GetString("username")
	lc.Hub.Register(conn, username)
	utils.InfoLogger.Printf("live: till connected (%s)", username)

	go func() {
		defer lc.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
