package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendQueueSize = 32
	writeWait     = 10 * time.Second

	// PongWait bounds how long a peer may stay silent; the read side must
	// extend its deadline on every pong.
	PongWait   = 60 * time.Second
	pingPeriod = (PongWait * 9) / 10
)

// Client is one WebSocket connection of one user
type Client struct {
	UserID uint
	Conn   *websocket.Conn

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func NewClient(userID uint, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, sendQueueSize),
	}
}

// trySend enqueues a frame without blocking. The mutex orders it against
// close: the hub may notify with a snapshot taken before the client
// unregistered, and sending on a closed queue would panic.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close shuts the send queue exactly once so WritePump can exit
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WritePump drains the send queue onto the socket. It runs in its own
// goroutine per connection; it exits when the hub closes the queue.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
