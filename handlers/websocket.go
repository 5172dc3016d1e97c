package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"zombie-outbreak/server/services"
)

var upgrader = websocket.Upgrader{
	// Any origin may connect; put the server behind a proxy to restrict it.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketHandler upgrades requests and serves each client until it
// disconnects.
func NewWebSocketHandler(runService *services.RunService, clientManager *ClientManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		HandleClientConnection(conn, runService, clientManager)
	}
}
