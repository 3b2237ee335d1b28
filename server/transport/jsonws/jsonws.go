// Package jsonws serves browser clients over gorilla/websocket using the JSON
// envelope format from shared/protocol.
package jsonws

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/automoto/puckduel/server/core"
	"github.com/automoto/puckduel/shared/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 16
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Dispatcher receives decoded client messages. *core.Server satisfies it.
type Dispatcher interface {
	Dispatch(conn core.Conn, msg any)
	Disconnect(conn core.Conn)
}

// Handler upgrades requests and pumps frames between a socket and the
// dispatcher.
type Handler struct {
	d        Dispatcher
	upgrader websocket.Upgrader
}

func NewHandler(d Dispatcher) *Handler {
	return &Handler{
		d: d,
		upgrader: websocket.Upgrader{
			// Browser clients are served from anywhere during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[jsonws] upgrade: %v", err)
		return
	}
	c := newConn(ws)
	log.Printf("[jsonws] %s connected from %s", c.id, r.RemoteAddr)

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go c.pingLoop(done)

	defer func() {
		close(done)
		h.d.Disconnect(c)
		_ = c.Close()
		log.Printf("[jsonws] %s disconnected", c.id)
	}()

	for {
		_, frame, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[jsonws] %s read: %v", c.id, err)
			}
			return
		}

		env, err := protocol.DecodeEnvelope(frame)
		if err != nil {
			continue
		}
		msg, err := protocol.DecodeClientMessage(env)
		if err != nil {
			continue
		}
		h.d.Dispatch(c, msg)
	}
}

// conn is a core.Conn over one socket. gorilla allows one concurrent writer,
// so every write takes mu.
type conn struct {
	id string
	ws *websocket.Conn

	mu        sync.Mutex
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{id: "ws:" + uuid.NewString(), ws: ws}
}

func (c *conn) ID() string {
	return c.id
}

func (c *conn) Send(msg any) error {
	frame, err := protocol.EncodeMessage(msg)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, frame)
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.ws.Close() })
	return err
}

func (c *conn) write(kind int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(kind, data); err != nil {
		return fmt.Errorf("write %s: %w", c.id, err)
	}
	return nil
}

func (c *conn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
