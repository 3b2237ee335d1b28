package core

import (
	"math"

	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

// SetIntent stores the latest movement intent for a seat, replacing any
// earlier one. Non-finite or out-of-range components drop the whole message.
func (g *Game) SetIntent(seat netconfig.Seat, dx, dy float64) {
	pp, ok := g.world.Physics(seat)
	if !ok {
		return
	}
	if !gamemath.Finite(dx, dy) {
		return
	}
	limit := g.tuning.MaxIntent
	if math.Abs(dx) > limit || math.Abs(dy) > limit {
		return
	}
	pp.IntentX, pp.IntentY = dx, dy
}

// SetPointer stores the last known pointer position for a seat.
func (g *Game) SetPointer(seat netconfig.Seat, x, y float64) {
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	if !gamemath.Finite(x, y) {
		return
	}
	ps := netcomponents.NetPlayerState.Get(entry)
	ps.PointerX, ps.PointerY = x, y
	ps.HasPointer = true
}
