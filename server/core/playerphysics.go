package core

import (
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/solarlune/resolv"
)

// PlayerPhysics holds per-player simulation state on the server. This is not a
// donburi component: it exists only on the server and is never sent.
type PlayerPhysics struct {
	Object *resolv.Object

	// Latest movement intent, consumed by the next tick.
	IntentX, IntentY float64

	// Last usable leash direction, kept for ticks where the pointer sits on
	// the player.
	LeashX, LeashY float64

	// Pending reversions. Each carries a token; a callback whose token no
	// longer matches does nothing.
	joltTimer  pendingTimer
	speedTimer pendingTimer
}

func newPlayerPhysics(space *resolv.Space, seat netconfig.Seat, x, y, radius float64) *PlayerPhysics {
	obj := newBodyObject(x, y, radius, tagPlayer)
	obj.Data = seat
	space.Add(obj)

	return &PlayerPhysics{
		Object: obj,
		LeashX: netconfig.AttackDirection(seat),
	}
}

func removePlayerPhysics(space *resolv.Space, pp *PlayerPhysics) {
	pp.cancelTimers()
	space.Remove(pp.Object)
}

func (pp *PlayerPhysics) clearIntent() {
	pp.IntentX, pp.IntentY = 0, 0
}

func (pp *PlayerPhysics) cancelTimers() {
	pp.joltTimer.cancel()
	pp.speedTimer.cancel()
}
