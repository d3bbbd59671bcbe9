package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/utils"
)

// Event types pushed to connected till clients.
const (
	EventTransactionCreated = "transaction_created"
	EventStatusChanged      = "status_changed"
	EventItemStatusChanged  = "item_status_changed"
	EventTransactionDeleted = "transaction_deleted"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans transaction lifecycle events out to every connected till, so open
// orders show up on other registers without polling.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> username
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, username string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = username
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) BroadcastTransactionCreated(txn models.Transaction) {
	h.broadcast(Message{Event: EventTransactionCreated, Data: txn})
}

func (h *Hub) BroadcastStatusChanged(txn models.Transaction) {
	h.broadcast(Message{Event: EventStatusChanged, Data: txn})
}

func (h *Hub) BroadcastItemStatusChanged(item models.TransactionItem) {
	h.broadcast(Message{Event: EventItemStatusChanged, Data: item})
}

func (h *Hub) BroadcastTransactionDeleted(id uint) {
	h.broadcast(Message{Event: EventTransactionDeleted, Data: map[string]uint{"id": id}})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("live: marshal broadcast: %v", err)
		return
	}

	for conn, username := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("live: dropping client %s: %v", username, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
