package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(9.0054, 38.7636, 9.0054, 38.7636))
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := HaversineKm(9.0054, 38.7636, 7.0504, 38.4955)
	d2 := HaversineKm(7.0504, 38.4955, 9.0054, 38.7636)
	assert.Equal(t, d1, d2)
}

func TestHaversineKnownDistances(t *testing.T) {
	// Addis Ababa (Bole) to Hawassa, roughly 220 km great-circle.
	d := HaversineKm(9.0054, 38.7636, 7.0504, 38.4955)
	assert.InDelta(t, 220, d, 10)

	// Antipodal points are half the Earth's circumference apart.
	antipodal := HaversineKm(0, 0, 0, 180)
	assert.InDelta(t, 20015, antipodal, 1)
}

func TestHaversineNonNegative(t *testing.T) {
	coords := [][4]float64{
		{0, 0, 0, 0},
		{-90, 0, 90, 0},
		{9.0, 38.7, 9.0, 38.8},
		{45.5, -122.6, 51.5, -0.1},
	}
	for _, c := range coords {
		assert.GreaterOrEqual(t, HaversineKm(c[0], c[1], c[2], c[3]), 0.0)
	}
}
