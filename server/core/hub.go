package core

import (
	"log"
	"sync"

	"github.com/automoto/puckduel/shared/netconfig"
)

// DefaultQueueSize is the per-connection outbound buffer, about two seconds of
// tick traffic.
const DefaultQueueSize = 512

// maxDirectSends bounds in-flight sends to seatless connections (rejected
// joiners). Beyond it the reply is dropped.
const maxDirectSends = 16

// Hub is the Broadcaster used by the server. Each attached connection gets a
// bounded queue drained by its own goroutine, so a slow client loses frames
// instead of stalling the tick.
type Hub struct {
	mu        sync.Mutex
	peers     map[netconfig.Seat]*peer
	queueSize int
	direct    chan struct{}
}

type peer struct {
	conn    Conn
	out     chan any
	dropped bool
}

func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		peers:     make(map[netconfig.Seat]*peer),
		queueSize: queueSize,
		direct:    make(chan struct{}, maxDirectSends),
	}
}

func (h *Hub) Attach(seat netconfig.Seat, conn Conn) {
	p := &peer{conn: conn, out: make(chan any, h.queueSize)}

	h.mu.Lock()
	if old, ok := h.peers[seat]; ok {
		close(old.out)
	}
	h.peers[seat] = p
	h.mu.Unlock()

	go p.run()
}

func (h *Hub) Detach(seat netconfig.Seat) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.peers[seat]; ok {
		close(p.out)
		delete(h.peers, seat)
	}
}

func (h *Hub) SendTo(seat netconfig.Seat, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p, ok := h.peers[seat]; ok {
		p.push(msg)
	}
}

func (h *Hub) SendConn(conn Conn, msg any) {
	select {
	case h.direct <- struct{}{}:
	default:
		log.Printf("[server] too many pending direct sends, dropping reply to %s", conn.ID())
		return
	}
	go func() {
		defer func() { <-h.direct }()
		if err := conn.Send(msg); err != nil {
			log.Printf("[server] send to %s failed: %v", conn.ID(), err)
		}
	}()
}

func (h *Hub) Broadcast(msg any) {
	h.BroadcastExcept(netconfig.SeatNone, msg)
}

func (h *Hub) BroadcastExcept(seat netconfig.Seat, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s, p := range h.peers {
		if s != seat {
			p.push(msg)
		}
	}
}

// Connected returns the number of attached connections.
func (h *Hub) Connected() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Close detaches every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for seat, p := range h.peers {
		close(p.out)
		delete(h.peers, seat)
	}
}

// push must be called with the hub lock held.
func (p *peer) push(msg any) {
	select {
	case p.out <- msg:
	default:
		if !p.dropped {
			log.Printf("[server] outbound queue full for %s, dropping frames", p.conn.ID())
			p.dropped = true
		}
	}
}

func (p *peer) run() {
	failed := false
	for msg := range p.out {
		if failed {
			continue
		}
		if err := p.conn.Send(msg); err != nil {
			log.Printf("[server] send to %s failed: %v", p.conn.ID(), err)
			failed = true
		}
	}
}
