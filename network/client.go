package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "disconnected"
}

// Client manages a necs WebSocket connection to a puck server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	view      View
	conn      *websocket.Conn
}

func NewClient() *Client {
	return &Client{
		state: StateDisconnected,
		view:  NewView(),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.view = NewView()
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.Joined) {
		if !msg.Success {
			log.Printf("[client] join rejected: %s", msg.Reason)
			c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
			return
		}
		log.Printf("[client] joined as %s", msg.Seat)
		c.mu.Lock()
		c.state = StateJoinedGame
		c.view.Apply(msg)
		c.mu.Unlock()
	})

	on[messages.Roster](c)
	on[messages.PlayerAdded](c)
	on[messages.PlayerMoved](c)
	on[messages.PlayerRemoved](c)
	on[messages.PuckState](c)
	on[messages.PuckShot](c)
	on[messages.Possession](c)
	on[messages.ScoreUpdated](c)
	on[messages.PositionsReset](c)
	on[messages.MatchOver](c)
	on[messages.SpeedModifierChanged](c)

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// on registers a handler that folds T into the view.
func on[T any](c *Client) {
	router.On(func(_ *router.NetworkClient, msg T) {
		c.mu.Lock()
		c.view.Apply(msg)
		c.mu.Unlock()
	})
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) Seat() netconfig.Seat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view.Seat
}

// View returns a copy of the latest table state. Non-blocking.
func (c *Client) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view.Clone()
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
