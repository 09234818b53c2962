package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroDistance(t *testing.T) {
	d := HaversineDistanceMeter(-6.2, 106.8, -6.2, 106.8)
	assert.InDelta(t, 0, d, 0.001)
}

func TestHaversineOneDegreeLongitudeAtEquator(t *testing.T) {
	// 1 derajat bujur di ekuator ≈ 111.195 m
	d := HaversineDistanceMeter(0, 0, 0, 1)
	assert.InEpsilon(t, 111195, d, 0.01)
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineDistanceMeter(-6.2, 106.8, -6.9, 107.6)
	b := HaversineDistanceMeter(-6.9, 107.6, -6.2, 106.8)
	assert.InDelta(t, a, b, 0.0001)
}

func TestHaversineJakartaBandung(t *testing.T) {
	// Monas → Gedung Sate, kira-kira 118 km
	d := HaversineDistanceMeter(-6.1754, 106.8272, -6.9025, 107.6186)
	assert.Greater(t, d, 100000.0)
	assert.Less(t, d, 140000.0)
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, validCoordinate(0, 0))
	assert.True(t, validCoordinate(-90, 180))
	assert.True(t, validCoordinate(90, -180))

	assert.False(t, validCoordinate(91, 0))
	assert.False(t, validCoordinate(0, 181))
	assert.False(t, validCoordinate(math.NaN(), 0))
	assert.False(t, validCoordinate(0, math.Inf(1)))
}
