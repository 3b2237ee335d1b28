package core

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/stretchr/testify/require"
)

// fakeConn records what the hub or game sends to it.
type fakeConn struct {
	id string

	mu   sync.Mutex
	sent []any
	recv chan any
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, recv: make(chan any, 1024)}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(msg any) error {
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
	select {
	case c.recv <- msg:
	default:
	}
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

// recorder is a synchronous Broadcaster that files every message under the
// seats that would receive it.
type recorder struct {
	attached map[netconfig.Seat]Conn
	inbox    map[netconfig.Seat][]any
	direct   map[string][]any
}

func newRecorder() *recorder {
	return &recorder{
		attached: make(map[netconfig.Seat]Conn),
		inbox:    make(map[netconfig.Seat][]any),
		direct:   make(map[string][]any),
	}
}

func (r *recorder) Attach(seat netconfig.Seat, conn Conn) { r.attached[seat] = conn }
func (r *recorder) Detach(seat netconfig.Seat)            { delete(r.attached, seat) }

func (r *recorder) SendTo(seat netconfig.Seat, msg any) {
	if _, ok := r.attached[seat]; ok {
		r.inbox[seat] = append(r.inbox[seat], msg)
	}
}

func (r *recorder) SendConn(conn Conn, msg any) {
	r.direct[conn.ID()] = append(r.direct[conn.ID()], msg)
}

func (r *recorder) Broadcast(msg any) {
	r.BroadcastExcept(netconfig.SeatNone, msg)
}

func (r *recorder) BroadcastExcept(seat netconfig.Seat, msg any) {
	for s := range r.attached {
		if s != seat {
			r.inbox[s] = append(r.inbox[s], msg)
		}
	}
}

func (r *recorder) clear() {
	r.inbox = make(map[netconfig.Seat][]any)
	r.direct = make(map[string][]any)
}

// ofType filters msgs down to values of type T, in order.
func ofType[T any](msgs []any) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// manualClock is a Scheduler driven by advance. With leaky set, cancelled
// callbacks still fire, which exercises the token guard on its own.
type manualClock struct {
	now    time.Duration
	timers []*manualTimer
	leaky  bool
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) schedule(d time.Duration, fn func()) func() {
	t := &manualTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return func() { t.stopped = true }
}

func (c *manualClock) advance(d time.Duration) {
	c.now += d
	due := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.fired || t.at > c.now {
			continue
		}
		if t.stopped && !c.leaky {
			continue
		}
		due = append(due, t)
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

func (c *manualClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T) (*Game, *recorder, *manualClock) {
	t.Helper()
	rec := newRecorder()
	clock := &manualClock{}
	return NewGame(rec, config.DefaultPhysics(), clock.schedule), rec, clock
}

func joinSeat(t *testing.T, g *Game, id string) netconfig.Seat {
	t.Helper()
	res := g.Join(newFakeConn(id), messages.JoinRequest{})
	require.True(t, res.Accepted, "join %s rejected: %s", id, res.Reason)
	return res.Seat
}

type playerView struct {
	pos   *netcomponents.NetPositionData
	vel   *netcomponents.NetVelocityData
	state *netcomponents.NetPlayerStateData
}

func viewPlayer(t *testing.T, g *Game, seat netconfig.Seat) playerView {
	t.Helper()
	entry, ok := g.World().Player(seat)
	require.True(t, ok, "%s not seated", seat)
	return playerView{
		pos:   netcomponents.NetPosition.Get(entry),
		vel:   netcomponents.NetVelocity.Get(entry),
		state: netcomponents.NetPlayerState.Get(entry),
	}
}

type puckView struct {
	pos  *netcomponents.NetPositionData
	vel  *netcomponents.NetVelocityData
	puck *netcomponents.NetPuckData
}

func viewPuck(g *Game) puckView {
	entry := g.World().Puck()
	return puckView{
		pos:  netcomponents.NetPosition.Get(entry),
		vel:  netcomponents.NetVelocity.Get(entry),
		puck: netcomponents.NetPuck.Get(entry),
	}
}

// placePlayer teleports a player and keeps the broadphase in step.
func placePlayer(g *Game, seat netconfig.Seat, x, y float64) {
	entry, ok := g.World().Player(seat)
	if !ok {
		return
	}
	pos := netcomponents.NetPosition.Get(entry)
	pos.X, pos.Y = x, y
	g.World().syncPlayerObject(seat)
}

func placePuck(g *Game, x, y, vx, vy float64) {
	p := viewPuck(g)
	p.pos.X, p.pos.Y = x, y
	p.vel.SpeedX, p.vel.SpeedY = vx, vy
	g.World().syncPuckObject()
}
