package gamemath

import "math"

// ApplyDecay scales a velocity component by a per-tick retention factor
// (0.99 keeps 99% of the speed each step).
func ApplyDecay(speed, retain float64) float64 {
	return speed * retain
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Distance returns the Euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// Normalize returns the unit vector of (x, y), or the zero vector when the
// input has no length.
func Normalize(x, y float64) (nx, ny float64) {
	length := math.Hypot(x, y)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return 0, 0
	}
	return x / length, y / length
}

// Bounce keeps a coordinate inside [lo, hi]. When the position has left the
// range, the velocity component is reflected and the position clamped.
func Bounce(pos, vel, lo, hi float64) (float64, float64) {
	if pos < lo || pos > hi {
		return Clamp(pos, lo, hi), -vel
	}
	return pos, vel
}

// Finite reports whether every value is a real number.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
