package kiosk

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"prize_wheel/internal/converter"
	"prize_wheel/internal/model"
	"prize_wheel/pkg/logger"

	"github.com/gorilla/websocket"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	sendBuffer      = 256
	broadcastBuffer = 256
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = 54 * time.Second
)

// Message is one event sent to displays.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub fans kiosk events out to every connected display.
type Hub struct {
	upgrader   websocket.Upgrader
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan []byte
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Kiosk displays are served from other origins on the local network.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*wsClient]struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			logger.L().Info("display connected", zap.String("client_id", c.id), zap.Int("total_clients", total))

		case c := <-h.unregister:
			h.drop(c)

		case data := <-h.broadcast:
			h.mu.RLock()
			var slow []*wsClient
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				logger.L().Warn("display too slow, disconnecting", zap.String("client_id", c.id))
				h.drop(c)
			}
		}
	}
}

func (h *Hub) drop(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	logger.L().Info("display disconnected", zap.String("client_id", c.id), zap.Int("remaining_clients", len(h.clients)))
}

// Clients is the number of connected displays.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues an event for every display. Events are dropped when the
// queue is full.
func (h *Hub) Publish(event string, payload any) {
	if o, ok := payload.(model.Outcome); ok {
		payload = converter.ToOutcomeResponse(o)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.L().Error("marshal kiosk event", zap.String("event", event), zap.Error(err))
		return
	}
	msg, err := json.Marshal(Message{Type: event, Data: data})
	if err != nil {
		logger.L().Error("marshal kiosk message", zap.String("event", event), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		logger.L().Warn("kiosk broadcast queue full, event dropped", zap.String("event", event))
	}
}

// ServeWS upgrades the request and attaches the display to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("clientId")
	if id == "" {
		var err error
		if id, err = gonanoid.New(); err != nil {
			http.Error(w, "client id", http.StatusInternalServerError)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &wsClient{hub: h, conn: conn, send: make(chan []byte, sendBuffer), id: id}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *wsClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L().Debug("websocket read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
	}
}

// writePump is the only writer on the connection.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
