package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Conn adapts one gorilla connection to the broker's Conn interface. All
// outbound traffic goes through the buffered send queue so the broker never
// writes to the socket directly.
type Conn struct {
	id string
	ws *websocket.Conn

	send      chan []byte
	closeOnce sync.Once
}

func newConn(id string, ws *websocket.Conn) *Conn {
	return &Conn{
		id:   id,
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
	}
}

func (that *Conn) ID() string {
	return that.id
}

// Send - queues data for delivery. Fails fast when the queue is full so a
// stalled participant cannot block matchmaking or relay for anyone else.
func (that *Conn) Send(data []byte) error {
	select {
	case that.send <- data:
		return nil
	default:
		return apperror.ErrConnectionClosed
	}
}

func (that *Conn) Close() error {
	var err error
	that.closeOnce.Do(func() {
		err = that.ws.Close()
	})

	return err
}

// writePump - drains the send queue and keeps the connection alive with pings.
func (that *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
