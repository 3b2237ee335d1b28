package messages

import "github.com/automoto/puckduel/shared/netconfig"

// PlayerInfo is the public view of a seated player.
type PlayerInfo struct {
	Seat    netconfig.Seat `json:"seat"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Radius  float64        `json:"radius"`
	HasPuck bool           `json:"hasPuck"`
}

// PuckInfo is the full puck state.
type PuckInfo struct {
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	VX     float64        `json:"vx"`
	VY     float64        `json:"vy"`
	Radius float64        `json:"radius"`
	HeldBy netconfig.Seat `json:"heldBy"`
}

// Roster lists every seated player.
type Roster struct {
	Players []PlayerInfo `json:"players"`
}

// PlayerAdded is sent to the other clients when a seat fills.
type PlayerAdded struct {
	Player PlayerInfo `json:"player"`
}

// PlayerMoved is broadcast for every player every tick.
type PlayerMoved struct {
	Seat netconfig.Seat `json:"seat"`
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
}

// PlayerRemoved is broadcast when a seat is vacated.
type PlayerRemoved struct {
	Seat netconfig.Seat `json:"seat"`
}

// PuckState is broadcast every tick.
type PuckState struct {
	Puck PuckInfo `json:"puck"`
}

// PuckShot is broadcast as soon as a shot is accepted.
type PuckShot struct {
	Puck PuckInfo `json:"puck"`
}

// Possession tells one player whether it now holds the puck.
type Possession struct {
	Seat    netconfig.Seat `json:"seat"`
	HasPuck bool           `json:"hasPuck"`
}

// ScoreUpdated carries both counters.
type ScoreUpdated struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// PositionsReset follows a goal or a match reset.
type PositionsReset struct{}

// MatchOver is broadcast when a seat reaches the win score.
type MatchOver struct {
	WinningSeat netconfig.Seat `json:"winningSeat"`
}

// SpeedModifierChanged is sent to a player whose speed penalty starts or ends.
type SpeedModifierChanged struct {
	Seat     netconfig.Seat `json:"seat"`
	Modifier float64        `json:"modifier"`
}
