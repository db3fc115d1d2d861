package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans events out to connected admin websockets. Each connection has its
// own queue and writer goroutine; a connection whose queue fills up is dropped.
type Hub struct {
	clients map[int64]*client
	nextID  int64
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

// Register adds conn and returns the id used to unregister it.
func (h *Hub) Register(conn *websocket.Conn) int64 {
	c := &client{conn: conn, send: make(chan Event, sendBuffer)}

	h.mutex.Lock()
	h.nextID++
	id := h.nextID
	h.clients[id] = c
	h.mutex.Unlock()

	go h.writeLoop(id, c)
	return id
}

func (h *Hub) writeLoop(id int64, c *client) {
	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			logrus.WithFields(logrus.Fields{"conn": id, "error": err}).Debug("dropping admin feed connection")
			h.Unregister(id)
			return
		}
	}
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	c, exists := h.clients[id]
	if exists {
		delete(h.clients, id)
		close(c.send)
	}
	h.mutex.Unlock()

	if exists && c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish queues ev for every connection without blocking on the network.
func (h *Hub) Publish(ev Event) {
	var slow []int64

	h.mutex.RLock()
	for id, c := range h.clients {
		select {
		case c.send <- ev:
		default:
			slow = append(slow, id)
		}
	}
	h.mutex.RUnlock()

	for _, id := range slow {
		logrus.WithField("conn", id).Warn("admin feed client too slow, disconnecting")
		h.Unregister(id)
	}
}

func (h *Hub) GetOnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	clients := h.clients
	h.clients = make(map[int64]*client)
	h.mutex.Unlock()

	for _, c := range clients {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}
