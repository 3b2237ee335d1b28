package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeZeroVector(t *testing.T) {
	x, y := Normalize(0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestNormalizeUnitLength(t *testing.T) {
	x, y := Normalize(3, 4)
	assert.InDelta(t, 0.6, x, 1e-9)
	assert.InDelta(t, 0.8, y, 1e-9)
}

func TestBounceReflectsAndClamps(t *testing.T) {
	pos, vel := Bounce(-3, -5, 10, 590)
	assert.Equal(t, 10.0, pos)
	assert.Equal(t, 5.0, vel)

	pos, vel = Bounce(600, 2, 10, 590)
	assert.Equal(t, 590.0, pos)
	assert.Equal(t, -2.0, vel)

	pos, vel = Bounce(300, 2, 10, 590)
	assert.Equal(t, 300.0, pos)
	assert.Equal(t, 2.0, vel)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(1, 2, -3))
	assert.False(t, Finite(1, math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}

func TestCalculateAimDirectionDegenerate(t *testing.T) {
	_, _, ok := CalculateAimDirection(5, 5, 5, 5)
	assert.False(t, ok)

	x, y, ok := CalculateAimDirection(0, 0, 0, 10)
	assert.True(t, ok)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
}

func TestCalculateShotVelocity(t *testing.T) {
	vx, vy := CalculateShotVelocity(0, 0, 10, 0, 7)
	assert.InDelta(t, 7, vx, 1e-9)
	assert.InDelta(t, 0, vy, 1e-9)
}
