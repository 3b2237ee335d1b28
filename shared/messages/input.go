package messages

// MoveInput is the latest movement intent. Components are in [-2, 2].
type MoveInput struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// PointerInput is the latest pointer position in arena coordinates.
type PointerInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShootInput releases the puck with the given velocity.
type ShootInput struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// JoltInput dashes toward the pointer carried in the message.
type JoltInput struct {
	PointerX float64 `json:"x"`
	PointerY float64 `json:"y"`
}
