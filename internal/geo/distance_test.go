package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_MoscowAddresses(t *testing.T) {
	// Delivery point in central Moscow against a restaurant a few km north.
	km := DistanceKm(55.75, 37.62, 55.80, 37.60)
	assert.InDelta(t, 5.7, km, 0.05)
}

func TestDistanceKm_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(55.75, 37.62, 55.75, 37.62))
}

func TestDistanceKm_RoundedToThreeDecimals(t *testing.T) {
	km := DistanceKm(55.751244, 37.618423, 59.934280, 30.335099)
	assert.Equal(t, math.Round(km*1000), km*1000)
	// Moscow to Saint Petersburg is roughly 635 km as the crow flies.
	assert.InDelta(t, 635, km, 5)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := DistanceKm(55.75, 37.62, 55.80, 37.60)
	b := DistanceKm(55.80, 37.60, 55.75, 37.62)
	assert.Equal(t, a, b)
}
