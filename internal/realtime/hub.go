// Package realtime pushes newly created appointments to connected WebSocket
// clients. The hub is constructed once at startup and handed to the handlers
// that publish; there is no package-level broadcast state.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Event is the payload delivered to subscribers. Data carries the created
// record as raw JSON.
type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Client is a single connected subscriber.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub tracks connected clients and fans events out to all of them. The
// stream is publish-only; inbound frames are discarded.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

// Broadcast delivers an event to every connected client. Clients whose send
// buffer is full are skipped rather than blocked on.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the event for this client.
		}
	}
}

// PublishAppointment broadcasts a newly created appointment record.
func (h *Hub) PublishAppointment(record interface{}) {
	data, err := json.Marshal(record)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal appointment for broadcast")
		return
	}
	h.Broadcast(Event{
		Type:      "newAppointment",
		Timestamp: time.Now(),
		Data:      data,
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the router level.
	},
}

// HandleConnect upgrades the request to a WebSocket connection and streams
// broadcast events to it until the peer disconnects.
func (h *Hub) HandleConnect(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.Register(client)

	go h.writePump(client, ws)
	go h.readPump(client, ws)
}

func (h *Hub) readPump(client *Client, ws *websocket.Conn) {
	defer func() {
		h.Unregister(client)
		ws.Close()
	}()

	// The stream is publish-only; reads exist to detect disconnects.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client, ws *websocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
