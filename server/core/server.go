package core

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// Options configure a Server.
type Options struct {
	Name     string
	TickRate int
	// Required client version; empty accepts any.
	Version   string
	Physics   config.PhysicsConfig
	QueueSize int
}

// Server wires transports to the game loop. Any number of transports may
// feed it through Dispatch and Disconnect.
type Server struct {
	name     string
	tickRate int
	started  time.Time

	game      *Game
	hub       *Hub
	loop      *GameLoop
	transport *transports.WsServerTransport

	// Connection id to seat. Touched only on the loop goroutine.
	sessions map[string]netconfig.Seat
	players  atomic.Int32
}

// NewServer creates a server with an empty lobby. Nothing runs until Start or
// StartLoop.
func NewServer(opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = netconfig.TickRate
	}
	if opts.Physics == (config.PhysicsConfig{}) {
		opts.Physics = config.Physics
	}
	if err := opts.Physics.Validate(); err != nil {
		log.Printf("[server] invalid physics tuning, using defaults: %v", err)
		opts.Physics = config.DefaultPhysics()
	}

	s := &Server{
		name:     opts.Name,
		tickRate: opts.TickRate,
		hub:      NewHub(opts.QueueSize),
		sessions: make(map[string]netconfig.Seat),
	}
	s.game = NewGame(s.hub, opts.Physics, func(d time.Duration, fn func()) func() {
		return s.loop.Schedule(d, fn)
	})
	s.game.RequireVersion(opts.Version)
	s.loop = NewGameLoop(s.game, opts.TickRate)
	return s
}

// StartLoop starts the simulation without the necs transport.
func (s *Server) StartLoop() {
	s.started = time.Now()
	go s.loop.Run()
}

// Start runs the loop and serves necs clients on port. It blocks.
func (s *Server) Start(port uint) error {
	s.StartLoop()
	s.setupRouterCallbacks()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the simulation and closes every outbound queue.
func (s *Server) Stop() {
	s.loop.Stop()
	<-s.loop.Done()
	s.hub.Close()
}

// PlayerCount is safe to call from any goroutine.
func (s *Server) PlayerCount() int {
	return int(s.players.Load())
}

// Dispatch hands a decoded client message to the loop.
func (s *Server) Dispatch(conn Conn, msg any) {
	s.loop.Post(func() { s.handle(conn, msg) })
}

// Disconnect frees whatever seat conn held.
func (s *Server) Disconnect(conn Conn) {
	s.loop.Post(func() { s.drop(conn) })
}

func (s *Server) handle(conn Conn, msg any) {
	if req, ok := msg.(messages.JoinRequest); ok {
		s.join(conn, req)
		return
	}

	seat, ok := s.sessions[conn.ID()]
	if !ok {
		return
	}

	switch m := msg.(type) {
	case messages.MoveInput:
		s.game.SetIntent(seat, m.DX, m.DY)
	case messages.PointerInput:
		s.game.SetPointer(seat, m.X, m.Y)
	case messages.ShootInput:
		s.game.Shoot(seat, m.VX, m.VY)
	case messages.JoltInput:
		s.game.Jolt(seat, m.PointerX, m.PointerY)
	default:
		log.Printf("[server] ignoring %T from %s", msg, conn.ID())
	}
}

func (s *Server) join(conn Conn, req messages.JoinRequest) {
	if _, seated := s.sessions[conn.ID()]; seated {
		return
	}
	res := s.game.Join(conn, req)
	if res.Accepted {
		s.sessions[conn.ID()] = res.Seat
		s.players.Store(int32(len(s.sessions)))
	}
}

func (s *Server) drop(conn Conn) {
	seat, ok := s.sessions[conn.ID()]
	if !ok {
		return
	}
	delete(s.sessions, conn.ID())
	s.players.Store(int32(len(s.sessions)))
	s.game.Leave(seat)
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] necs client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] necs client %s disconnected with error: %v", client.Id(), err)
		}
		s.Disconnect(necsConn{client})
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.Dispatch(necsConn{client}, msg)
	})
	router.On(func(client *router.NetworkClient, msg messages.MoveInput) {
		s.Dispatch(necsConn{client}, msg)
	})
	router.On(func(client *router.NetworkClient, msg messages.PointerInput) {
		s.Dispatch(necsConn{client}, msg)
	})
	router.On(func(client *router.NetworkClient, msg messages.ShootInput) {
		s.Dispatch(necsConn{client}, msg)
	})
	router.On(func(client *router.NetworkClient, msg messages.JoltInput) {
		s.Dispatch(necsConn{client}, msg)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] necs client error: %v", err)
	})
}

// necsConn adapts a necs client to Conn.
type necsConn struct {
	client *router.NetworkClient
}

func (c necsConn) ID() string {
	return "necs:" + c.client.Id()
}

func (c necsConn) Send(msg any) error {
	return c.client.SendMessage(msg)
}

func (c necsConn) Close() error {
	return nil
}
