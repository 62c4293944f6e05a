package eventControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, hub *Hub, userID string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/ws", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	}, hub.Handler)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (h *Hub) connCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}

func TestNotifyCartUpdatedReachesUserConnections(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub, "user-1")
	conn := dialHub(t, server)

	// The handler registers the connection just after the handshake.
	require.Eventually(t, func() bool {
		return hub.connCount("user-1") == 1
	}, time.Second, 10*time.Millisecond)

	hub.NotifyCartUpdated("user-1")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg map[string]string
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "cartUpdated", msg["event"])
}

func TestNotifyCartUpdatedUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.NotifyCartUpdated("nobody")
	assert.Zero(t, hub.connCount("nobody"))
}

func TestHubDropsClosedConnections(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub, "user-1")
	conn := dialHub(t, server)

	require.Eventually(t, func() bool {
		return hub.connCount("user-1") == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	// Either the read loop or a failed notify unregisters the peer.
	require.Eventually(t, func() bool {
		hub.NotifyCartUpdated("user-1")
		return hub.connCount("user-1") == 0
	}, 2*time.Second, 50*time.Millisecond)
}

func TestHandlerRejectsMissingUser(t *testing.T) {
	hub := NewHub()
	server := newHubServer(t, hub, "")

	resp, err := http.Get(server.URL + "/api/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
