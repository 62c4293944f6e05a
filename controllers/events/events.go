package eventControllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client owns all writes to one connection. gorilla/websocket allows a
// single concurrent writer, so notifies from different goroutines
// serialize on the client mutex instead of the hub mutex.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub fans cart events out to every open connection of the owning user.
// This replaces the browser-side `cartUpdated` event the UI used to
// re-sync the header badge and the cart sidebar.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*client]bool)}
}

// DefaultHub is shared by the cart controllers and the voice dispatcher.
var DefaultHub = NewHub()

func (h *Hub) add(userID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]bool)
	}
	h.conns[userID][cl] = true
}

func (h *Hub) remove(userID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], cl)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// NotifyCartUpdated pushes a cartUpdated event to the user's connections.
// The hub lock is only held to snapshot the connection set; the writes
// themselves run outside it under a per-write deadline, so one stalled
// peer cannot block every other user's cart mutation. Connections that
// fail to write are dropped.
func (h *Hub) NotifyCartUpdated(userID string) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.conns[userID]))
	for cl := range h.conns[userID] {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		if err := cl.send(gin.H{"event": "cartUpdated"}); err != nil {
			cl.conn.Close()
			h.remove(userID, cl)
		}
	}
}

// GET /api/ws
func (h *Hub) Handler(c *gin.Context) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "code": "UNAUTHORIZED"})
		return
	}
	userID := userIDVal.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	cl := &client{conn: conn}
	h.add(userID, cl)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(userID, cl)
			break
		}
	}
}
