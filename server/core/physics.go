package core

import (
	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

// Tick advances the world by one fixed step. The order is fixed: puck,
// possession, goal, players, player collisions, broadcast.
func (g *Game) Tick() {
	g.world.State().Tick++

	g.stepPuck()
	g.checkPossession()
	g.checkGoal()
	g.stepPlayers()
	g.resolvePlayerCollisions()
	g.followHolder()
	g.broadcastState()
}

// followHolder re-pins a held puck after its holder moved this tick, so the
// broadcast shows it on the leash.
func (g *Game) followHolder() {
	pd := netcomponents.NetPuck.Get(g.world.Puck())
	if !pd.Free() {
		g.leashPuck(pd.HeldBy)
	}
}

// stepPuck integrates a free puck or pins a held one to its holder.
func (g *Game) stepPuck() {
	puck := g.world.Puck()
	pd := netcomponents.NetPuck.Get(puck)
	pos := netcomponents.NetPosition.Get(puck)
	vel := netcomponents.NetVelocity.Get(puck)

	if !pd.Free() {
		if g.leashPuck(pd.HeldBy) {
			return
		}
		// Holder vanished between ticks.
		pd.HeldBy = netconfig.SeatNone
	}

	pos.X += vel.SpeedX
	pos.Y += vel.SpeedY
	vel.SpeedX = gamemath.ApplyDecay(vel.SpeedX, g.tuning.PuckFriction)
	vel.SpeedY = gamemath.ApplyDecay(vel.SpeedY, g.tuning.PuckFriction)

	r := pd.Radius
	pos.X, vel.SpeedX = gamemath.Bounce(pos.X, vel.SpeedX, r, netconfig.ArenaWidth-r)
	pos.Y, vel.SpeedY = gamemath.Bounce(pos.Y, vel.SpeedY, r, netconfig.ArenaHeight-r)
}

// leashPuck places the puck in front of its holder, toward the holder's
// pointer. When the pointer is unknown or on top of the holder, the last
// usable direction is kept.
func (g *Game) leashPuck(holder netconfig.Seat) bool {
	entry, ok := g.world.Player(holder)
	if !ok {
		return false
	}
	pp, ok := g.world.Physics(holder)
	if !ok {
		return false
	}

	puck := g.world.Puck()
	pd := netcomponents.NetPuck.Get(puck)
	ps := netcomponents.NetPlayerState.Get(entry)
	hp := netcomponents.NetPosition.Get(entry)

	if ps.HasPointer {
		if dx, dy, ok := gamemath.CalculateAimDirection(hp.X, hp.Y, ps.PointerX, ps.PointerY); ok {
			pp.LeashX, pp.LeashY = dx, dy
		}
	}

	offset := ps.Radius + pd.Radius + netconfig.LeashMargin
	x, y := gamemath.CalculateLeashPoint(hp.X, hp.Y, pp.LeashX, pp.LeashY, offset)

	pos := netcomponents.NetPosition.Get(puck)
	pos.X = gamemath.Clamp(x, pd.Radius, netconfig.ArenaWidth-pd.Radius)
	pos.Y = gamemath.Clamp(y, pd.Radius, netconfig.ArenaHeight-pd.Radius)

	vel := netcomponents.NetVelocity.Get(puck)
	vel.SpeedX, vel.SpeedY = 0, 0
	return true
}

// stepPlayers applies the pending intent, integrates, decays and clamps.
func (g *Game) stepPlayers() {
	for _, seat := range g.world.Seated() {
		entry, ok := g.world.Player(seat)
		if !ok {
			continue
		}
		pp, ok := g.world.Physics(seat)
		if !ok {
			continue
		}
		pos := netcomponents.NetPosition.Get(entry)
		vel := netcomponents.NetVelocity.Get(entry)
		ps := netcomponents.NetPlayerState.Get(entry)

		accel := g.tuning.MoveSpeed * ps.SpeedModifier
		vel.SpeedX += pp.IntentX * accel
		vel.SpeedY += pp.IntentY * accel
		pp.clearIntent()

		pos.X += vel.SpeedX
		pos.Y += vel.SpeedY
		vel.SpeedX = gamemath.ApplyDecay(vel.SpeedX, g.tuning.PlayerFriction)
		vel.SpeedY = gamemath.ApplyDecay(vel.SpeedY, g.tuning.PlayerFriction)

		clampPlayer(pos, ps.Radius)
	}
}

func clampPlayer(pos *netcomponents.NetPositionData, r float64) {
	pos.X = gamemath.Clamp(pos.X, r, netconfig.ArenaWidth-r)
	pos.Y = gamemath.Clamp(pos.Y, r, netconfig.ArenaHeight-r)
}

// resolvePlayerCollisions separates each overlapping pair once and nudges
// their velocities toward each other. The response is a damped heuristic,
// not an elastic collision.
func (g *Game) resolvePlayerCollisions() {
	seats := g.world.Seated()
	for _, seat := range seats {
		g.world.syncPlayerObject(seat)
	}

	for _, a := range seats {
		pa, ok := g.world.Physics(a)
		if !ok {
			continue
		}
		for _, b := range g.world.playersNear(pa.Object) {
			if b <= a {
				continue
			}
			g.collidePlayers(a, b)
		}
	}

	for _, seat := range seats {
		g.world.syncPlayerObject(seat)
	}
}

func (g *Game) collidePlayers(a, b netconfig.Seat) {
	ea, ok := g.world.Player(a)
	if !ok {
		return
	}
	eb, ok := g.world.Player(b)
	if !ok {
		return
	}
	posA := netcomponents.NetPosition.Get(ea)
	posB := netcomponents.NetPosition.Get(eb)
	ra := netcomponents.NetPlayerState.Get(ea).Radius
	rb := netcomponents.NetPlayerState.Get(eb).Radius

	dist := gamemath.Distance(posA.X, posA.Y, posB.X, posB.Y)
	minDist := ra + rb
	if dist >= minDist {
		return
	}

	// Coincident centres have no separation axis; push along x.
	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = (posA.X-posB.X)/dist, (posA.Y-posB.Y)/dist
	}
	half := (minDist - dist) / 2
	posA.X += nx * half
	posA.Y += ny * half
	posB.X -= nx * half
	posB.Y -= ny * half

	velA := netcomponents.NetVelocity.Get(ea)
	velB := netcomponents.NetVelocity.Get(eb)
	k := g.tuning.CollisionDamping / g.tuning.CombinedMass
	relX := velA.SpeedX - velB.SpeedX
	relY := velA.SpeedY - velB.SpeedY
	velA.SpeedX -= relX * k
	velA.SpeedY -= relY * k
	velB.SpeedX += relX * k
	velB.SpeedY += relY * k

	// Separation may push a player past a wall.
	clampPlayer(posA, ra)
	clampPlayer(posB, rb)
}

func (g *Game) broadcastState() {
	for _, seat := range g.world.Seated() {
		entry, ok := g.world.Player(seat)
		if !ok {
			continue
		}
		pos := netcomponents.NetPosition.Get(entry)
		g.out.Broadcast(messages.PlayerMoved{Seat: seat, X: pos.X, Y: pos.Y})
	}
	g.out.Broadcast(messages.PuckState{Puck: g.puckInfo()})
}
