package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreePuckIntegratesThenDecays(t *testing.T) {
	g, _, _ := newTestGame(t)
	placePuck(g, 300, 200, 5, 0)

	g.Tick()

	p := viewPuck(g)
	assert.InDelta(t, 305, p.pos.X, 1e-9)
	assert.InDelta(t, 4.95, p.vel.SpeedX, 1e-9)
}

func TestPuckBouncesOffWall(t *testing.T) {
	g, _, _ := newTestGame(t)
	placePuck(g, 300, 12, 0, -5)

	g.Tick()

	p := viewPuck(g)
	assert.Equal(t, netconfig.PuckRadius, p.pos.Y)
	assert.InDelta(t, 4.95, p.vel.SpeedY, 1e-9)
}

func TestIntentIsLastWriteWinsAndConsumedOnce(t *testing.T) {
	g, _, _ := newTestGame(t)
	seat := joinSeat(t, g, "a")

	g.SetIntent(seat, 1, 0)
	g.SetIntent(seat, 0, 2)
	g.Tick()

	p := viewPlayer(t, g, seat)
	assert.InDelta(t, 100, p.pos.X, 1e-9)
	assert.InDelta(t, 202, p.pos.Y, 1e-9)
	assert.InDelta(t, 1.8, p.vel.SpeedY, 1e-9)

	g.Tick()
	assert.InDelta(t, 203.8, p.pos.Y, 1e-9)
	assert.InDelta(t, 1.62, p.vel.SpeedY, 1e-9)
}

func TestMalformedIntentDropped(t *testing.T) {
	g, _, _ := newTestGame(t)
	seat := joinSeat(t, g, "a")

	g.SetIntent(seat, 1, 0)
	g.SetIntent(seat, 3, 0)
	g.SetIntent(seat, math.NaN(), 0)
	g.SetIntent(seat, 0, math.Inf(1))
	g.SetIntent(netconfig.Seat2, 1, 1)
	g.Tick()

	p := viewPlayer(t, g, seat)
	assert.InDelta(t, 101, p.pos.X, 1e-9)
	assert.InDelta(t, 200, p.pos.Y, 1e-9)
}

func TestPointerIgnoresNonFinite(t *testing.T) {
	g, _, _ := newTestGame(t)
	seat := joinSeat(t, g, "a")

	g.SetPointer(seat, 10, 20)
	g.SetPointer(seat, math.NaN(), 5)

	p := viewPlayer(t, g, seat)
	assert.True(t, p.state.HasPointer)
	assert.Equal(t, 10.0, p.state.PointerX)
	assert.Equal(t, 20.0, p.state.PointerY)
}

func TestPlayerClampedToArena(t *testing.T) {
	g, _, _ := newTestGame(t)
	seat := joinSeat(t, g, "a")
	p := viewPlayer(t, g, seat)
	p.vel.SpeedX, p.vel.SpeedY = -500, 900

	g.Tick()

	assert.Equal(t, netconfig.PlayerRadius, p.pos.X)
	assert.Equal(t, netconfig.ArenaHeight-netconfig.PlayerRadius, p.pos.Y)
}

func TestPlayerCollisionSeparatesAndDamps(t *testing.T) {
	g, _, _ := newTestGame(t)
	joinSeat(t, g, "a")
	joinSeat(t, g, "b")
	placePlayer(g, netconfig.Seat1, 300, 100)
	placePlayer(g, netconfig.Seat2, 330, 100)
	a := viewPlayer(t, g, netconfig.Seat1)
	b := viewPlayer(t, g, netconfig.Seat2)
	a.vel.SpeedX = 2

	g.Tick()

	// After motion: a at 302 moving 1.8, b at 330. Overlap 12, each moves 6.
	assert.InDelta(t, 296, a.pos.X, 1e-9)
	assert.InDelta(t, 336, b.pos.X, 1e-9)
	assert.InDelta(t, 100, a.pos.Y, 1e-9)
	// Relative velocity 1.8 scaled by 0.5/2.
	assert.InDelta(t, 1.35, a.vel.SpeedX, 1e-9)
	assert.InDelta(t, 0.45, b.vel.SpeedX, 1e-9)
}

func TestCoincidentPlayersSeparate(t *testing.T) {
	g, _, _ := newTestGame(t)
	joinSeat(t, g, "a")
	joinSeat(t, g, "b")
	placePlayer(g, netconfig.Seat1, 300, 100)
	placePlayer(g, netconfig.Seat2, 300, 100)

	g.Tick()

	a := viewPlayer(t, g, netconfig.Seat1)
	b := viewPlayer(t, g, netconfig.Seat2)
	assert.False(t, math.IsNaN(a.pos.X))
	assert.InDelta(t, 40, math.Hypot(a.pos.X-b.pos.X, a.pos.Y-b.pos.Y), 1e-9)
}

func TestTickBroadcastsFullState(t *testing.T) {
	g, rec, _ := newTestGame(t)
	joinSeat(t, g, "a")
	joinSeat(t, g, "b")
	rec.clear()

	g.Tick()

	msgs := rec.inbox[netconfig.Seat1]
	moved := ofType[messages.PlayerMoved](msgs)
	require.Len(t, moved, 2)
	assert.Equal(t, netconfig.Seat1, moved[0].Seat)
	assert.Equal(t, netconfig.Seat2, moved[1].Seat)
	assert.Len(t, ofType[messages.PuckState](msgs), 1)
	assert.Equal(t, uint64(1), g.World().State().Tick)
}

// TestTickInvariants drives two players with random input and checks the
// world after every tick.
func TestTickInvariants(t *testing.T) {
	g, _, clock := newTestGame(t)
	joinSeat(t, g, "a")
	joinSeat(t, g, "b")
	rng := rand.New(rand.NewSource(7))

	lastTotal := 0
	for i := 0; i < 5000; i++ {
		for _, seat := range netconfig.Seats {
			g.SetIntent(seat, rng.Float64()*4-2, rng.Float64()*4-2)
			g.SetPointer(seat, rng.Float64()*netconfig.ArenaWidth, rng.Float64()*netconfig.ArenaHeight)
			switch rng.Intn(40) {
			case 0:
				g.Shoot(seat, rng.Float64()*30-15, rng.Float64()*30-15)
			case 1:
				g.Jolt(seat, rng.Float64()*netconfig.ArenaWidth, rng.Float64()*netconfig.ArenaHeight)
			}
		}
		g.Tick()
		clock.advance(netconfig.TickInterval)

		holders := 0
		for _, seat := range netconfig.Seats {
			p := viewPlayer(t, g, seat)
			r := p.state.Radius
			require.GreaterOrEqual(t, p.pos.X, r)
			require.LessOrEqual(t, p.pos.X, netconfig.ArenaWidth-r)
			require.GreaterOrEqual(t, p.pos.Y, r)
			require.LessOrEqual(t, p.pos.Y, netconfig.ArenaHeight-r)
			if p.state.HasPuck {
				holders++
				require.Equal(t, seat, viewPuck(g).puck.HeldBy)
			}
		}
		require.LessOrEqual(t, holders, 1)

		puck := viewPuck(g)
		if puck.puck.Free() {
			require.Zero(t, holders)
		} else {
			require.Equal(t, 1, holders)
		}
		r := puck.puck.Radius
		require.GreaterOrEqual(t, puck.pos.X, r)
		require.LessOrEqual(t, puck.pos.X, netconfig.ArenaWidth-r)
		require.GreaterOrEqual(t, puck.pos.Y, r)
		require.LessOrEqual(t, puck.pos.Y, netconfig.ArenaHeight-r)

		st := g.World().State()
		total := st.Score1 + st.Score2
		if total != 0 {
			require.Contains(t, []int{lastTotal, lastTotal + 1}, total)
		}
		lastTotal = total
	}
}
