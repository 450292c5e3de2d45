package relay

import (
	"sync"

	"github.com/gorilla/websocket"
)

const sendBufferSize = 32

// Client is a single WebSocket connection. userID is zero until the
// client sends an auth frame; channelID is zero until it joins a
// channel.
type Client struct {
	conn *websocket.Conn

	userID    uint64
	channelID uint64

	mu     sync.Mutex
	closed bool
	send   chan interface{}
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan interface{}, sendBufferSize),
	}
}

// enqueue hands an event to the write pump. Slow clients whose buffer
// is full have the event dropped rather than blocking the sender, and
// a closed client swallows the event instead of panicking.
func (c *Client) enqueue(event interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- event:
	default:
	}
}

// close shuts down the write pump and the underlying connection. Safe
// to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump serializes all writes to the connection. It exits when the
// send channel is closed, closing the connection on the way out.
func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
