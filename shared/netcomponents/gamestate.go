package netcomponents

import (
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetGameStateData struct {
	Score1, Score2 int
	MatchState     netconfig.MatchStateID
	Tick           uint64
}

// ScoreOf returns the goals credited to a seat.
func (g *NetGameStateData) ScoreOf(s netconfig.Seat) int {
	switch s {
	case netconfig.Seat1:
		return g.Score1
	case netconfig.Seat2:
		return g.Score2
	}
	return 0
}

// Credit adds one goal to a seat and returns the new total.
func (g *NetGameStateData) Credit(s netconfig.Seat) int {
	switch s {
	case netconfig.Seat1:
		g.Score1++
		return g.Score1
	case netconfig.Seat2:
		g.Score2++
		return g.Score2
	}
	return 0
}

// ResetScores zeroes both counters.
func (g *NetGameStateData) ResetScores() {
	g.Score1, g.Score2 = 0, 0
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
