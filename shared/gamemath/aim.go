package gamemath

// CalculateAimDirection returns the unit vector from (fromX, fromY) toward
// (toX, toY). ok is false when the two points coincide.
func CalculateAimDirection(fromX, fromY, toX, toY float64) (aimX, aimY float64, ok bool) {
	aimX, aimY = Normalize(toX-fromX, toY-fromY)
	return aimX, aimY, aimX != 0 || aimY != 0
}

// CalculateLeashPoint returns the point at distance offset from the anchor
// along the unit direction (dirX, dirY).
func CalculateLeashPoint(anchorX, anchorY, dirX, dirY, offset float64) (x, y float64) {
	return anchorX + dirX*offset, anchorY + dirY*offset
}

// CalculateShotVelocity returns a velocity of the given speed toward a target.
func CalculateShotVelocity(fromX, fromY, toX, toY, speed float64) (velX, velY float64) {
	dirX, dirY := Normalize(toX-fromX, toY-fromY)
	return dirX * speed, dirY * speed
}
