package network

import (
	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netconfig"
)

// View is a client's picture of the table, rebuilt from server broadcasts.
type View struct {
	Seat          netconfig.Seat
	Players       map[netconfig.Seat]messages.PlayerInfo
	Puck          messages.PuckInfo
	Score         messages.ScoreUpdated
	SpeedModifier float64
	Winner        netconfig.Seat // last match winner, SeatNone until one
	Frames        uint64         // puckState broadcasts seen
}

func NewView() View {
	return View{
		Players:       make(map[netconfig.Seat]messages.PlayerInfo),
		SpeedModifier: 1,
	}
}

// Me returns this client's own player, if seated.
func (v View) Me() (messages.PlayerInfo, bool) {
	p, ok := v.Players[v.Seat]
	return p, ok && v.Seat.Valid()
}

// Clone returns a copy that shares no maps with v.
func (v View) Clone() View {
	out := v
	out.Players = make(map[netconfig.Seat]messages.PlayerInfo, len(v.Players))
	for s, p := range v.Players {
		out.Players[s] = p
	}
	return out
}

// Apply folds one server message into the view. Unknown messages are ignored.
func (v *View) Apply(msg any) {
	switch m := msg.(type) {
	case messages.Joined:
		if m.Success {
			v.Seat = m.Seat
		}
	case messages.Roster:
		v.Players = make(map[netconfig.Seat]messages.PlayerInfo, len(m.Players))
		for _, p := range m.Players {
			v.Players[p.Seat] = p
		}
	case messages.PlayerAdded:
		v.Players[m.Player.Seat] = m.Player
	case messages.PlayerMoved:
		p, ok := v.Players[m.Seat]
		if !ok {
			return
		}
		p.X, p.Y = m.X, m.Y
		v.Players[m.Seat] = p
	case messages.PlayerRemoved:
		delete(v.Players, m.Seat)
	case messages.PuckState:
		v.setPuck(m.Puck)
		v.Frames++
	case messages.PuckShot:
		v.setPuck(m.Puck)
	case messages.Possession:
		p, ok := v.Players[m.Seat]
		if !ok {
			return
		}
		p.HasPuck = m.HasPuck
		v.Players[m.Seat] = p
	case messages.ScoreUpdated:
		v.Score = m
	case messages.PositionsReset:
		v.SpeedModifier = 1
	case messages.MatchOver:
		v.Winner = m.WinningSeat
	case messages.SpeedModifierChanged:
		if m.Seat == v.Seat {
			v.SpeedModifier = m.Modifier
		}
	}
}

func (v *View) setPuck(p messages.PuckInfo) {
	v.Puck = p
	for s, pl := range v.Players {
		pl.HasPuck = s == p.HeldBy
		v.Players[s] = pl
	}
}
