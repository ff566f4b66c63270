package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSameDistrict(t *testing.T) {
	d, ok := Distance("Chennai", "chennai")
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)

	// Equal names short-circuit even for districts outside the table
	d, ok = Distance("Somewhere", "somewhere")
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)
}

func TestDistanceDeterministic(t *testing.T) {
	d1, ok1 := Distance("Chennai", "Coimbatore")
	d2, ok2 := Distance("Chennai", "Coimbatore")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, d1, d2)
}

func TestDistanceSymmetric(t *testing.T) {
	d1, _ := Distance("Madurai", "Salem")
	d2, _ := Distance("Salem", "Madurai")
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKnownPairs(t *testing.T) {
	// Chennai to Coimbatore is roughly 440 km by road, ~365 km direct
	d, ok := Distance("Chennai", "Coimbatore")
	assert.True(t, ok)
	assert.Greater(t, d, 100.0)

	// Chennai to Kanchipuram is well under 100 km
	d, ok = Distance("Chennai", "Kanchipuram")
	assert.True(t, ok)
	assert.Less(t, d, 100.0)

	// Thanjavur to Thiruvarur are neighbouring districts
	d, ok = Distance("Thanjavur", "Thiruvarur")
	assert.True(t, ok)
	assert.Less(t, d, 100.0)
}

func TestDistanceUnknownDistrict(t *testing.T) {
	_, ok := Distance("Chennai", "Atlantis")
	assert.False(t, ok)

	_, ok = Distance("Atlantis", "Chennai")
	assert.False(t, ok)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("Chennai"))
	assert.True(t, Known(" tiruppur "))
	assert.False(t, Known("Atlantis"))
}
