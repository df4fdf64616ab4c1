package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Hub fans record events out to each user's connected dashboards so they
// can refetch the summary without polling. A client only ever receives
// events for its own user id; the id is taken from the session at upgrade
// time, never from the socket.
type Hub struct {
	clients    map[*websocket.Conn]int64
	events     chan event
	register   chan registration
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

type registration struct {
	conn   *websocket.Conn
	userID int64
}

type event struct {
	userID  int64
	payload []byte
}

// RecordEvent is the message pushed after an insert or delete.
type RecordEvent struct {
	Type string `json:"type"` // "created" or "deleted"
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func NewHub() *Hub {
	hub := &Hub{
		clients:    make(map[*websocket.Conn]int64),
		events:     make(chan event, 256),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for {
		select {
		case reg := <-h.register:
			h.mu.Lock()
			h.clients[reg.conn] = reg.userID
			h.mu.Unlock()
			log.Printf("🔌 Dashboard connected (user=%d). Total clients: %d", reg.userID, h.count())

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			log.Printf("🔌 Dashboard disconnected. Total clients: %d", h.count())

		case ev := <-h.events:
			h.mu.Lock()
			for conn, userID := range h.clients {
				if userID != ev.userID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, ev.payload); err != nil {
					log.Printf("Error writing to dashboard: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConn serves one websocket connection for the authenticated user.
// It blocks until the client goes away.
func (h *Hub) HandleConn(conn *websocket.Conn) {
	userID, ok := conn.Locals("userID").(int64)
	if !ok {
		conn.Close()
		return
	}

	h.register <- registration{conn: conn, userID: userID}
	defer func() {
		h.unregister <- conn
	}()

	// Clients send nothing meaningful; read until close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// NotifyRecord pushes a record event to the user's dashboards. It never
// blocks: with no listeners or a full channel the event is dropped.
func (h *Hub) NotifyRecord(userID int64, action, kind string, id int64) {
	if h == nil || h.count() == 0 {
		return
	}

	payload, err := json.Marshal(RecordEvent{Type: action, Kind: kind, ID: id})
	if err != nil {
		log.Printf("Error serializing record event: %v", err)
		return
	}

	select {
	case h.events <- event{userID: userID, payload: payload}:
	default:
		// Channel full, drop the event
	}
}
