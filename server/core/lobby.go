package core

import (
	"fmt"
	"log"

	"github.com/automoto/puckduel/shared/messages"
	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
)

// Rejection reasons sent in Joined.Reason.
const (
	ReasonLobbyFull       = "Sorry, the lobby is full."
	ReasonVersionMismatch = "Client version mismatch."
)

// JoinResult is the outcome of a join request.
type JoinResult struct {
	Accepted bool
	Seat     netconfig.Seat
	Reason   string
}

// Join seats conn in the lowest free seat. A rejected join changes nothing in
// the world; the client is told why.
func (g *Game) Join(conn Conn, req messages.JoinRequest) JoinResult {
	if g.version != "" && req.Version != g.version {
		log.Printf("[server] rejecting %s: version %q, want %q", conn.ID(), req.Version, g.version)
		return g.reject(conn, ReasonVersionMismatch)
	}

	seat := g.world.FreeSeat()
	if seat == netconfig.SeatNone {
		log.Printf("[server] rejecting %s: lobby full", conn.ID())
		return g.reject(conn, ReasonLobbyFull)
	}

	entry := g.world.AddPlayer(seat)
	g.updateMatchState()
	g.out.Attach(seat, conn)

	g.out.SendTo(seat, messages.Joined{
		Success: true,
		Seat:    seat,
		Message: fmt.Sprintf("You are %s", seat),
	})
	g.out.SendTo(seat, g.roster())
	g.out.SendTo(seat, messages.PuckState{Puck: g.puckInfo()})
	g.out.Broadcast(g.scoreUpdated())
	g.out.BroadcastExcept(seat, messages.PlayerAdded{Player: playerInfo(entry)})

	name := req.PlayerName
	if name == "" {
		name = conn.ID()
	}
	log.Printf("[server] %s joined as %s", name, seat)
	return JoinResult{Accepted: true, Seat: seat}
}

func (g *Game) reject(conn Conn, reason string) JoinResult {
	g.out.SendConn(conn, messages.Joined{Success: false, Reason: reason})
	return JoinResult{Reason: reason}
}

// Leave frees a seat. It releases the puck if held and cancels the player's
// timers before the entity goes away. Leaving an empty seat is a no-op.
func (g *Game) Leave(seat netconfig.Seat) {
	entry, ok := g.world.Player(seat)
	if !ok {
		return
	}

	if netcomponents.NetPlayerState.Get(entry).HasPuck {
		g.release()
		vel := netcomponents.NetVelocity.Get(g.world.Puck())
		vel.SpeedX, vel.SpeedY = 0, 0
	}

	g.world.RemovePlayer(seat)
	g.updateMatchState()
	g.out.Detach(seat)
	g.out.Broadcast(messages.PlayerRemoved{Seat: seat})

	log.Printf("[server] %s left", seat)
}
