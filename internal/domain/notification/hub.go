package notification

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSEvent is pushed to connected clients.
type WSEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventNotification = "notification"
	EventUnreadCount  = "unread_count"
)

type connection struct {
	who  Identity
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks live sockets per identity; one identity may hold several (web and mobile).
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := c.who.Key()
	if h.connections[key] == nil {
		h.connections[key] = make(map[*connection]struct{})
	}
	h.connections[key][c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := c.who.Key()
	set, ok := h.connections[key]
	if !ok {
		return
	}
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(h.connections, key)
	}
}

// Online reports whether who has at least one open socket.
func (h *Hub) Online(who Identity) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[who.Key()]) > 0
}

// Push sends an event to every socket of each identity and returns how many identities were reached.
func (h *Hub) Push(to []Identity, event *WSEvent) int {
	data, err := json.Marshal(event)
	if err != nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	reached := 0
	for _, who := range to {
		set := h.connections[who.Key()]
		if len(set) == 0 {
			continue
		}
		reached++
		for c := range set {
			select {
			case c.send <- data:
			default:
				// slow client, drop
			}
		}
	}
	return reached
}

// ServeWS registers the connection and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn, who Identity) {
	c := &connection{
		who:  who,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// clients only listen; anything they send is discarded
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
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
