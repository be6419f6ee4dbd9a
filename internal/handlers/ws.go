package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if origin == "" {
			return true
		}

		for _, allowed := range types.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}

		return false
	},
}

type wsClient struct {
	conn    *websocket.Conn
	channel string
	send    chan []byte
}

var (
	wsMu      sync.RWMutex
	wsClients = make(map[*wsClient]struct{})
)

// BroadcastRefresh tells every socket subscribed to a channel that its data
// changed and should be refetched. Slow clients are dropped rather than
// blocking the caller.
func BroadcastRefresh(channel string) {
	message := []byte(`{"type":"refresh"}`)

	wsMu.RLock()
	defer wsMu.RUnlock()

	for client := range wsClients {
		if client.channel != channel {
			continue
		}

		select {
		case client.send <- message:
		default:
		}
	}
}

func registerClient(client *wsClient) {
	wsMu.Lock()
	wsClients[client] = struct{}{}
	wsMu.Unlock()
}

func unregisterClient(client *wsClient) {
	wsMu.Lock()
	if _, ok := wsClients[client]; ok {
		delete(wsClients, client)
		close(client.send)
	}
	wsMu.Unlock()
}

// WebSocketHandler subscribes the authenticated user to their refresh
// channel: the family channel when they belong to one, their private
// channel otherwise.
func WebSocketHandler(ctx *gin.Context) {
	scope, ok := resolveRequestScope(ctx)

	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &wsClient{
		conn:    conn,
		channel: scope.ChannelKey(),
		send:    make(chan []byte, 8),
	}

	registerClient(client)

	go client.writeLoop()
	go client.readLoop()
}

func (c *wsClient) writeLoop() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readLoop drains incoming frames so pings and close frames are handled;
// clients never send application messages.
func (c *wsClient) readLoop() {
	defer func() {
		unregisterClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
