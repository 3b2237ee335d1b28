// Package netconfig defines lightweight types and arena constants shared
// between client and server. It must have zero dependencies so both sides of
// the transport agree on the same numbers.
package netconfig

import "time"

// Seat identifies one of the two fixed player slots. SeatNone marks "no seat",
// e.g. a free puck.
type Seat int

const (
	SeatNone Seat = 0
	Seat1    Seat = 1
	Seat2    Seat = 2
)

// MaxSeats is the lobby size.
const MaxSeats = 2

// Seats lists every seat in allocation order.
var Seats = [MaxSeats]Seat{Seat1, Seat2}

// Valid reports whether s names a real seat.
func (s Seat) Valid() bool {
	return s == Seat1 || s == Seat2
}

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	switch s {
	case Seat1:
		return Seat2
	case Seat2:
		return Seat1
	}
	return SeatNone
}

func (s Seat) String() string {
	switch s {
	case Seat1:
		return "Player 1"
	case Seat2:
		return "Player 2"
	}
	return "none"
}

// Arena constants. Clients draw with these, so changing one is a protocol change.
const (
	ArenaWidth  = 600.0
	ArenaHeight = 400.0
	GoalWidth   = 10.0
	GoalHeight  = 100.0

	// Vertical aperture of both goals, exclusive on both ends.
	GoalTop    = (ArenaHeight - GoalHeight) / 2
	GoalBottom = (ArenaHeight + GoalHeight) / 2

	WinScore = 10

	TickRate = 60

	PlayerRadius = 20.0
	PuckRadius   = 10.0
	LeashMargin  = 5.0
)

// TickInterval is the nominal duration of one simulation step.
const TickInterval = time.Second / TickRate

// Start positions.
const (
	PuckStartX = ArenaWidth / 2
	PuckStartY = ArenaHeight / 2

	Seat1StartX = 100.0
	Seat2StartX = 500.0
	SeatStartY  = ArenaHeight / 2
)

// StartPosition returns where a seat spawns and respawns after a goal.
func StartPosition(s Seat) (x, y float64) {
	if s == Seat2 {
		return Seat2StartX, SeatStartY
	}
	return Seat1StartX, SeatStartY
}

// AttackDirection is the x direction a seat scores toward: seat 1 attacks the
// right goal, seat 2 the left.
func AttackDirection(s Seat) float64 {
	if s == Seat2 {
		return -1
	}
	return 1
}

// MatchStateID represents the current state of a match.
type MatchStateID int

const (
	MatchStateWaiting MatchStateID = iota // fewer than two seats occupied
	MatchStatePlaying
)

func (m MatchStateID) String() string {
	if m == MatchStatePlaying {
		return "playing"
	}
	return "waiting"
}
