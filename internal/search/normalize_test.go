package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	t.Run("known cities map to their codes", func(t *testing.T) {
		assert.Equal(t, "NYC", NormalizeLocation("New York"))
		assert.Equal(t, "DEL", NormalizeLocation("delhi"))
		assert.Equal(t, "BOM", NormalizeLocation("  Mumbai  "))
	})

	t.Run("unknown inputs pass through upper-cased", func(t *testing.T) {
		assert.Equal(t, "XYZ", NormalizeLocation("xyz"))
		assert.Equal(t, "DEL", NormalizeLocation("DEL"))
	})

	t.Run("aliases share a code", func(t *testing.T) {
		assert.Equal(t, NormalizeLocation("bangalore"), NormalizeLocation("bengaluru"))
	})
}

func TestKnownCities(t *testing.T) {
	cities := KnownCities()
	assert.NotEmpty(t, cities)
	assert.Contains(t, cities, "goa")
}
