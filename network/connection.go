package network

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrConnectionClosed is returned when sending on a closed connection
var ErrConnectionClosed = errors.New("connection closed")

// ErrSendBufferFull is returned when the client is not keeping up
var ErrSendBufferFull = errors.New("send buffer full")

// Connection wraps the WebSocket connection with additional fields
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ws:   ws,
		send: make(chan []byte, 256), // Buffered channel for outgoing messages
		done: make(chan struct{}),
	}
}

// ReadPump reads messages from the WebSocket connection until it fails, then
// closes the connection.
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading message: %v", err)
			}
			break
		}

		h.HandleMessage(c, message)
	}
}

// WritePump writes queued messages to the WebSocket connection. It returns
// once the connection is closed.
func (c *Connection) WritePump() {
	defer c.Close()

	for {
		select {
		case message := <-c.send:
			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-c.done:
			c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// SendMessage queues msg for the write pump, waiting for buffer space if the
// client is behind.
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrConnectionClosed
	case c.send <- messageBytes:
		return nil
	}
}

// TrySendMessage queues msg without waiting. A client whose buffer is full is
// dropped.
func (c *Connection) TrySendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.Close()
		return ErrSendBufferFull
	}
}

// Close stops both pumps. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// Done is closed when the connection is closed
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// MessageHandler interface for handling messages
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}
