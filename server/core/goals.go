package core

import (
	"log"

	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

// goalScoredBy returns the seat credited for the puck's current position, or
// SeatNone. The left goal credits seat 2 and the right goal seat 1.
func goalScoredBy(x, y, r float64) netconfig.Seat {
	if y <= netconfig.GoalTop || y >= netconfig.GoalBottom {
		return netconfig.SeatNone
	}
	switch {
	case x-r <= netconfig.GoalWidth:
		return netconfig.Seat2
	case x+r >= netconfig.ArenaWidth-netconfig.GoalWidth:
		return netconfig.Seat1
	}
	return netconfig.SeatNone
}

func (g *Game) checkGoal() {
	puck := g.world.Puck()
	pos := netcomponents.NetPosition.Get(puck)
	scorer := goalScoredBy(pos.X, pos.Y, netcomponents.NetPuck.Get(puck).Radius)
	if scorer == netconfig.SeatNone {
		return
	}
	g.scoreGoal(scorer)
}

func (g *Game) scoreGoal(scorer netconfig.Seat) {
	st := g.world.State()
	total := st.Credit(scorer)
	log.Printf("[server] goal for %s (%d-%d)", scorer, st.Score1, st.Score2)

	g.out.Broadcast(g.scoreUpdated())
	g.resetPositions()

	if total >= netconfig.WinScore {
		g.out.Broadcast(messages.MatchOver{WinningSeat: scorer})
		log.Printf("[server] %s wins the match", scorer)
		g.resetMatch()
	}
}

// resetPositions puts the puck at the centre and every player on its start
// column, with abilities restored.
func (g *Game) resetPositions() {
	g.release()
	puck := g.world.Puck()
	pos := netcomponents.NetPosition.Get(puck)
	vel := netcomponents.NetVelocity.Get(puck)
	pos.X, pos.Y = netconfig.PuckStartX, netconfig.PuckStartY
	vel.SpeedX, vel.SpeedY = 0, 0
	g.world.syncPuckObject()

	for _, seat := range g.world.Seated() {
		entry, ok := g.world.Player(seat)
		if !ok {
			continue
		}
		p := netcomponents.NetPosition.Get(entry)
		v := netcomponents.NetVelocity.Get(entry)
		p.X, p.Y = netconfig.StartPosition(seat)
		v.SpeedX, v.SpeedY = 0, 0
		netcomponents.NetPlayerState.Get(entry).HasPuck = false
		if pp, ok := g.world.Physics(seat); ok {
			pp.clearIntent()
		}
		g.resetAbilities(seat)
		g.world.syncPlayerObject(seat)
	}

	g.out.Broadcast(messages.PositionsReset{})
	g.out.Broadcast(g.roster())
	g.out.Broadcast(messages.PuckState{Puck: g.puckInfo()})
}

func (g *Game) resetMatch() {
	g.world.State().ResetScores()
	g.resetPositions()
	g.out.Broadcast(g.scoreUpdated())
}
