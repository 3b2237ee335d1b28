package core

import (
	"log"

	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

const normalSpeed = 1.0

// Jolt dashes a non-holding player toward the pointer carried by the request.
// It starts two independent reversions: the cooldown that re-enables jolting
// and the speed penalty.
func (g *Game) Jolt(seat netconfig.Seat, pointerX, pointerY float64) {
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	pp, ok := g.world.Physics(seat)
	if !ok {
		return
	}
	if !gamemath.Finite(pointerX, pointerY) {
		return
	}

	ps := netcomponents.NetPlayerState.Get(entry)
	ps.PointerX, ps.PointerY = pointerX, pointerY
	ps.HasPointer = true

	if ps.HasPuck || !ps.CanJolt {
		return
	}

	pos := netcomponents.NetPosition.Get(entry)
	vel := netcomponents.NetVelocity.Get(entry)
	dirX, dirY, _ := gamemath.CalculateAimDirection(pos.X, pos.Y, pointerX, pointerY)
	vel.SpeedX += dirX * g.tuning.JoltSpeed
	vel.SpeedY += dirY * g.tuning.JoltSpeed

	ps.CanJolt = false
	g.arm(&pp.joltTimer, g.tuning.JoltCooldown, func(token uint64) {
		g.endJoltCooldown(seat, token)
	})

	ps.SpeedModifier = g.tuning.SpeedPenalty
	g.arm(&pp.speedTimer, g.tuning.SpeedPenaltyDuration, func(token uint64) {
		g.endSpeedPenalty(seat, token)
	})
	g.out.SendTo(seat, messages.SpeedModifierChanged{Seat: seat, Modifier: ps.SpeedModifier})

	log.Printf("[server] %s jolted", seat)
}

func (g *Game) endJoltCooldown(seat netconfig.Seat, token uint64) {
	pp, ok := g.world.Physics(seat)
	if !ok || !pp.joltTimer.fires(token) {
		return
	}
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	netcomponents.NetPlayerState.Get(entry).CanJolt = true
}

func (g *Game) endSpeedPenalty(seat netconfig.Seat, token uint64) {
	pp, ok := g.world.Physics(seat)
	if !ok || !pp.speedTimer.fires(token) {
		return
	}
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	ps := netcomponents.NetPlayerState.Get(entry)
	ps.SpeedModifier = normalSpeed
	g.out.SendTo(seat, messages.SpeedModifierChanged{Seat: seat, Modifier: ps.SpeedModifier})
}

// resetAbilities cancels pending reversions and restores a player's jolt and
// speed immediately.
func (g *Game) resetAbilities(seat netconfig.Seat) {
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}
	if pp, ok := g.world.Physics(seat); ok {
		pp.cancelTimers()
	}
	ps := netcomponents.NetPlayerState.Get(entry)
	ps.CanJolt = true
	if ps.SpeedModifier != normalSpeed {
		ps.SpeedModifier = normalSpeed
		g.out.SendTo(seat, messages.SpeedModifierChanged{Seat: seat, Modifier: normalSpeed})
	}
}
