package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}

	// Roughly 344km between the two city centers.
	d := DistanceMeters(paris, london)
	assert.InDelta(t, 344000, d, 2000)

	assert.Zero(t, DistanceMeters(paris, paris))
}

func TestInsideCircle(t *testing.T) {
	center := Point{Latitude: 40.0, Longitude: 29.0}
	near := Point{Latitude: 40.001, Longitude: 29.001} // ~140m away
	far := Point{Latitude: 40.1, Longitude: 29.1}      // ~14km away

	assert.True(t, InsideCircle(near, center, 500))
	assert.False(t, InsideCircle(far, center, 500))
	assert.True(t, InsideCircle(center, center, 0), "zero radius includes the center itself")
}
