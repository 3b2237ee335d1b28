package protocol

import (
	"github.com/automoto/puckduel/shared/gamemath"
	"github.com/automoto/puckduel/shared/messages"
)

// Inbound payloads decode into pointer fields so an absent coordinate can be
// told apart from a zero one.

type moveFrame struct {
	DX *float64 `json:"dx"`
	DY *float64 `json:"dy"`
}

type pointerFrame struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type shootFrame struct {
	VX *float64 `json:"vx"`
	VY *float64 `json:"vy"`
}

type joltFrame struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func pair(a, b *float64) (float64, float64, bool) {
	if a == nil || b == nil {
		return 0, 0, false
	}
	if !gamemath.Finite(*a, *b) {
		return 0, 0, false
	}
	return *a, *b, true
}

func (f moveFrame) message() (any, bool) {
	dx, dy, ok := pair(f.DX, f.DY)
	return messages.MoveInput{DX: dx, DY: dy}, ok
}

func (f pointerFrame) message() (any, bool) {
	x, y, ok := pair(f.X, f.Y)
	return messages.PointerInput{X: x, Y: y}, ok
}

func (f shootFrame) message() (any, bool) {
	vx, vy, ok := pair(f.VX, f.VY)
	return messages.ShootInput{VX: vx, VY: vy}, ok
}

func (f joltFrame) message() (any, bool) {
	x, y, ok := pair(f.X, f.Y)
	return messages.JoltInput{PointerX: x, PointerY: y}, ok
}
