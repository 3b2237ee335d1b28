package core

import (
	"sort"

	"github.com/automoto/puckduel/shared/netcomponents"
	"github.com/automoto/puckduel/shared/netconfig"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Resolv tags for the broadphase.
const (
	tagPlayer = "player"
	tagPuck   = "puck"
)

const spaceCellSize = 20

// broadphaseMargin pads every body's box. resolv maps a box to cells by its
// last whole unit, so unpadded circles in contact can land in disjoint cells.
const broadphaseMargin = 2.0

// World is the canonical record of players, puck and score. It holds data and
// the geometry index only; every rule lives on Game.
type World struct {
	ecs   donburi.World
	space *resolv.Space

	players map[netconfig.Seat]donburi.Entity
	physics map[donburi.Entity]*PlayerPhysics

	puck    donburi.Entity
	puckObj *resolv.Object
	state   donburi.Entity
}

// NewWorld creates the puck at the arena centre and a zeroed score.
func NewWorld() *World {
	w := &World{
		ecs:     donburi.NewWorld(),
		space:   resolv.NewSpace(int(netconfig.ArenaWidth), int(netconfig.ArenaHeight), spaceCellSize, spaceCellSize),
		players: make(map[netconfig.Seat]donburi.Entity),
		physics: make(map[donburi.Entity]*PlayerPhysics),
	}

	w.puck = w.ecs.Create(netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetPuck)
	puck := w.ecs.Entry(w.puck)
	netcomponents.NetPosition.Set(puck, &netcomponents.NetPositionData{X: netconfig.PuckStartX, Y: netconfig.PuckStartY})
	netcomponents.NetVelocity.Set(puck, &netcomponents.NetVelocityData{})
	netcomponents.NetPuck.Set(puck, &netcomponents.NetPuckData{Radius: netconfig.PuckRadius})

	w.puckObj = newBodyObject(netconfig.PuckStartX, netconfig.PuckStartY, netconfig.PuckRadius, tagPuck)
	w.space.Add(w.puckObj)

	w.state = w.ecs.Create(netcomponents.NetGameState)
	netcomponents.NetGameState.Set(w.ecs.Entry(w.state), &netcomponents.NetGameStateData{
		MatchState: netconfig.MatchStateWaiting,
	})

	return w
}

// FreeSeat returns the lowest unoccupied seat, or SeatNone when full.
func (w *World) FreeSeat() netconfig.Seat {
	for _, s := range netconfig.Seats {
		if _, taken := w.players[s]; !taken {
			return s
		}
	}
	return netconfig.SeatNone
}

// PlayerCount returns the number of occupied seats.
func (w *World) PlayerCount() int {
	return len(w.players)
}

// Seated returns occupied seats in ascending order.
func (w *World) Seated() []netconfig.Seat {
	seats := make([]netconfig.Seat, 0, len(w.players))
	for s := range w.players {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	return seats
}

// AddPlayer creates the entity for a seat at its start position.
func (w *World) AddPlayer(seat netconfig.Seat) *donburi.Entry {
	entity := w.ecs.Create(netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetPlayerState)
	entry := w.ecs.Entry(entity)

	x, y := netconfig.StartPosition(seat)
	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{X: x, Y: y})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Seat:          seat,
		Radius:        netconfig.PlayerRadius,
		CanJolt:       true,
		SpeedModifier: 1,
	})

	w.players[seat] = entity
	w.physics[entity] = newPlayerPhysics(w.space, seat, x, y, netconfig.PlayerRadius)
	return entry
}

// RemovePlayer destroys a seat's entity and broadphase object. The caller is
// responsible for releasing the puck and cancelling timers first.
func (w *World) RemovePlayer(seat netconfig.Seat) {
	entity, ok := w.players[seat]
	if !ok {
		return
	}
	if pp, ok := w.physics[entity]; ok {
		removePlayerPhysics(w.space, pp)
		delete(w.physics, entity)
	}
	delete(w.players, seat)
	if w.ecs.Valid(entity) {
		w.ecs.Remove(entity)
	}
}

// Player returns the entry for a seat, if occupied.
func (w *World) Player(seat netconfig.Seat) (*donburi.Entry, bool) {
	entity, ok := w.players[seat]
	if !ok || !w.ecs.Valid(entity) {
		return nil, false
	}
	return w.ecs.Entry(entity), true
}

// Physics returns the server-only state for a seat.
func (w *World) Physics(seat netconfig.Seat) (*PlayerPhysics, bool) {
	entity, ok := w.players[seat]
	if !ok {
		return nil, false
	}
	pp, ok := w.physics[entity]
	return pp, ok
}

// Puck returns the puck entry.
func (w *World) Puck() *donburi.Entry {
	return w.ecs.Entry(w.puck)
}

// State returns the score and match bookkeeping.
func (w *World) State() *netcomponents.NetGameStateData {
	return netcomponents.NetGameState.Get(w.ecs.Entry(w.state))
}

// syncPlayerObject moves a player's broadphase box to its current position.
func (w *World) syncPlayerObject(seat netconfig.Seat) {
	entry, ok := w.Player(seat)
	if !ok {
		return
	}
	pp, ok := w.Physics(seat)
	if !ok {
		return
	}
	pos := netcomponents.NetPosition.Get(entry)
	moveBodyObject(pp.Object, pos.X, pos.Y, netcomponents.NetPlayerState.Get(entry).Radius)
}

func (w *World) syncPlayerObjects() {
	for seat := range w.players {
		w.syncPlayerObject(seat)
	}
}

func (w *World) syncPuckObject() {
	puck := w.Puck()
	pos := netcomponents.NetPosition.Get(puck)
	moveBodyObject(w.puckObj, pos.X, pos.Y, netcomponents.NetPuck.Get(puck).Radius)
}

// newBodyObject builds the padded broadphase box of a circle at (x, y).
func newBodyObject(x, y, r float64, tag string) *resolv.Object {
	half := r + broadphaseMargin
	obj := resolv.NewObject(x-half, y-half, 2*half, 2*half, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, 2*half, 2*half))
	return obj
}

func moveBodyObject(obj *resolv.Object, x, y, r float64) {
	half := r + broadphaseMargin
	obj.X = x - half
	obj.Y = y - half
	obj.Update()
}

// playersNear returns the seats whose boxes share a cell with obj, ascending.
// Candidates only; callers still run the exact circle test.
func (w *World) playersNear(obj *resolv.Object) []netconfig.Seat {
	check := obj.Check(0, 0, tagPlayer)
	if check == nil {
		return nil
	}
	var seats []netconfig.Seat
	for _, other := range check.ObjectsByTags(tagPlayer) {
		if seat, ok := other.Data.(netconfig.Seat); ok {
			seats = append(seats, seat)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	return seats
}
