package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/models"
)

func TestExtractPrice(t *testing.T) {
	t.Run("decorated rupee tags parse", func(t *testing.T) {
		v, err := ExtractPrice(models.Money("₹8,500"))
		require.NoError(t, err)
		assert.Equal(t, 8500.0, v)
	})

	t.Run("dollar tags and whitespace parse", func(t *testing.T) {
		v, err := ExtractPrice(models.Money("$ 1,299.50"))
		require.NoError(t, err)
		assert.Equal(t, 1299.5, v)
	})

	t.Run("bare numbers parse", func(t *testing.T) {
		v, err := ExtractPrice(models.Money("300"))
		require.NoError(t, err)
		assert.Equal(t, 300.0, v)
	})

	t.Run("non-numeric tags are an error, not zero", func(t *testing.T) {
		_, err := ExtractPrice(models.Money("Price on request"))
		assert.Error(t, err)
	})

	t.Run("empty tags are an error", func(t *testing.T) {
		_, err := ExtractPrice(models.Money(""))
		assert.Error(t, err)
	})
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(850000), MinorUnits(8500))
	assert.Equal(t, int64(129950), MinorUnits(1299.5))
	assert.Equal(t, int64(10), MinorUnits(0.1))
}
