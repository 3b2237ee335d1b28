package core

import (
	"log"

	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

// Puck possession moves Free -> Held(s) on acquisition, Held(s) -> Held(s')
// on steal and Held(s) -> Free on shoot. Leave and reset also free it.

// checkPossession grants a free puck or transfers a held one to the first
// non-holding player touching it, lowest seat first. At most one change per
// tick.
func (g *Game) checkPossession() {
	pd := netcomponents.NetPuck.Get(g.world.Puck())

	g.world.syncPuckObject()
	g.world.syncPlayerObjects()
	for _, seat := range g.world.playersNear(g.world.puckObj) {
		if seat == pd.HeldBy || !g.touchesPuck(seat) {
			continue
		}
		if pd.Free() {
			g.grant(seat)
		} else {
			g.steal(seat)
		}
		return
	}
}

// touchesPuck is the exact test behind the broadphase: centre distance below
// the sum of radii.
func (g *Game) touchesPuck(seat netconfig.Seat) bool {
	entry, ok := g.world.Player(seat)
	if !ok {
		return false
	}
	puck := g.world.Puck()
	pp := netcomponents.NetPosition.Get(entry)
	cp := netcomponents.NetPosition.Get(puck)
	reach := netcomponents.NetPlayerState.Get(entry).Radius + netcomponents.NetPuck.Get(puck).Radius
	return gamemath.Distance(pp.X, pp.Y, cp.X, cp.Y) < reach
}

func (g *Game) grant(seat netconfig.Seat) {
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	pd := netcomponents.NetPuck.Get(g.world.Puck())
	if pd.HeldBy == seat {
		return
	}
	pd.HeldBy = seat
	netcomponents.NetPlayerState.Get(entry).HasPuck = true

	g.out.SendTo(seat, messages.Possession{Seat: seat, HasPuck: true})
}

func (g *Game) steal(seat netconfig.Seat) {
	pd := netcomponents.NetPuck.Get(g.world.Puck())
	prev := pd.HeldBy
	if prev == seat {
		return
	}
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}

	if holder, ok := g.world.Player(prev); ok {
		netcomponents.NetPlayerState.Get(holder).HasPuck = false
	}
	pd.HeldBy = seat
	netcomponents.NetPlayerState.Get(entry).HasPuck = true

	g.out.SendTo(prev, messages.Possession{Seat: prev, HasPuck: false})
	g.out.SendTo(seat, messages.Possession{Seat: seat, HasPuck: true})
	log.Printf("[server] %s stole the puck from %s", seat, prev)
}

// release frees the puck without touching its velocity.
func (g *Game) release() {
	pd := netcomponents.NetPuck.Get(g.world.Puck())
	if holder, ok := g.world.Player(pd.HeldBy); ok {
		netcomponents.NetPlayerState.Get(holder).HasPuck = false
	}
	pd.HeldBy = netconfig.SeatNone
}

// Shoot releases the puck with velocity (vx, vy). Only the holder may shoot.
// The velocity is applied here once; the next tick integrates it like any
// other free-puck velocity.
func (g *Game) Shoot(seat netconfig.Seat, vx, vy float64) {
	if _, ok := g.world.Player(seat); !ok {
		return
	}
	if !gamemath.Finite(vx, vy) {
		return
	}
	puck := g.world.Puck()
	if netcomponents.NetPuck.Get(puck).HeldBy != seat {
		return
	}

	g.release()
	vel := netcomponents.NetVelocity.Get(puck)
	vel.SpeedX, vel.SpeedY = vx, vy

	g.out.SendTo(seat, messages.Possession{Seat: seat, HasPuck: false})
	g.out.Broadcast(messages.PuckShot{Puck: g.puckInfo()})
}
