package core

import (
	"time"

	"github.com/automoto/puckduel/config"
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/yohamta/donburi"
)

// Game applies the rules to a World. It is not safe for concurrent use: one
// goroutine (the GameLoop) must own it, and every method runs to completion
// before the next starts.
type Game struct {
	world    *World
	out      Broadcaster
	tuning   config.PhysicsConfig
	schedule Scheduler

	// Required client version; empty accepts any.
	version string

	nextToken uint64
}

// NewGame creates a game with an empty lobby. A nil schedule uses wall-clock
// timers that call straight back into the game, which is only safe when the
// caller serialises access some other way.
func NewGame(out Broadcaster, tuning config.PhysicsConfig, schedule Scheduler) *Game {
	if schedule == nil {
		schedule = func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		}
	}
	return &Game{
		world:    NewWorld(),
		out:      out,
		tuning:   tuning,
		schedule: schedule,
	}
}

// RequireVersion makes Join reject clients reporting a different version.
func (g *Game) RequireVersion(v string) {
	g.version = v
}

// World exposes the state for read-only inspection.
func (g *Game) World() *World {
	return g.world
}

func playerInfo(entry *donburi.Entry) messages.PlayerInfo {
	pos := netcomponents.NetPosition.Get(entry)
	ps := netcomponents.NetPlayerState.Get(entry)
	return messages.PlayerInfo{
		Seat:    ps.Seat,
		X:       pos.X,
		Y:       pos.Y,
		Radius:  ps.Radius,
		HasPuck: ps.HasPuck,
	}
}

func (g *Game) puckInfo() messages.PuckInfo {
	puck := g.world.Puck()
	pos := netcomponents.NetPosition.Get(puck)
	vel := netcomponents.NetVelocity.Get(puck)
	pd := netcomponents.NetPuck.Get(puck)
	return messages.PuckInfo{
		X:      pos.X,
		Y:      pos.Y,
		VX:     vel.SpeedX,
		VY:     vel.SpeedY,
		Radius: pd.Radius,
		HeldBy: pd.HeldBy,
	}
}

func (g *Game) roster() messages.Roster {
	r := messages.Roster{Players: []messages.PlayerInfo{}}
	for _, seat := range g.world.Seated() {
		if entry, ok := g.world.Player(seat); ok {
			r.Players = append(r.Players, playerInfo(entry))
		}
	}
	return r
}

func (g *Game) scoreUpdated() messages.ScoreUpdated {
	st := g.world.State()
	return messages.ScoreUpdated{Score1: st.Score1, Score2: st.Score2}
}

func (g *Game) updateMatchState() {
	st := g.world.State()
	if g.world.PlayerCount() == netconfig.MaxSeats {
		st.MatchState = netconfig.MatchStatePlaying
	} else {
		st.MatchState = netconfig.MatchStateWaiting
	}
}

// Snapshot is a consistent copy of the world for diagnostics.
type Snapshot struct {
	Tick       uint64                `json:"tick"`
	MatchState string                `json:"matchState"`
	Score      messages.ScoreUpdated `json:"score"`
	Players    []messages.PlayerInfo `json:"players"`
	Puck       messages.PuckInfo     `json:"puck"`
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	st := g.world.State()
	return Snapshot{
		Tick:       st.Tick,
		MatchState: st.MatchState.String(),
		Score:      g.scoreUpdated(),
		Players:    g.roster().Players,
		Puck:       g.puckInfo(),
	}
}
