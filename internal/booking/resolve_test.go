package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/render"
)

func liveResults() []models.Result {
	return []models.Result{
		models.Flight{ID: "AI101", Airline: "Air India", Price: "5400"},
		models.Flight{ID: "2", Airline: "IndiGo", Price: "4800"},
		models.Flight{ID: "SG55", Airline: "SpiceJet", Price: "5100"},
	}
}

func TestResolveItem(t *testing.T) {
	t.Run("exact id wins", func(t *testing.T) {
		item, via, err := resolveItem(liveResults(), "", "AI101")
		require.NoError(t, err)
		assert.Equal(t, "exact", via)
		assert.Equal(t, "AI101", item.ResultID())
	})

	t.Run("numeric ids match across textual forms", func(t *testing.T) {
		item, via, err := resolveItem(liveResults(), "", "2.0")
		require.NoError(t, err)
		assert.Equal(t, "coerced", via)
		assert.Equal(t, "2", item.ResultID())
	})

	t.Run("trailing digits fall back to position", func(t *testing.T) {
		item, via, err := resolveItem(liveResults(), "", "flight-3")
		require.NoError(t, err)
		assert.Equal(t, "positional", via)
		assert.Equal(t, "SG55", item.ResultID())
	})

	t.Run("an out-of-range position does not resolve", func(t *testing.T) {
		_, _, err := resolveItem(liveResults(), "", "flight-9")
		assert.ErrorIs(t, err, models.ErrItemNotFound)
	})

	t.Run("empty results with no fragment is not found", func(t *testing.T) {
		_, _, err := resolveItem(nil, "", "AI101")
		assert.ErrorIs(t, err, models.ErrItemNotFound)
	})
}

func TestResolveItem_AfterCacheOverwrite(t *testing.T) {
	// A new search replaced the cache wholesale. An id from the previous
	// result set must not resolve when no fallback rung matches it.
	replaced := []models.Result{
		models.Hotel{ID: "H9", Name: "Hilltop", PricePerNight: "4100"},
	}

	_, _, err := resolveItem(replaced, "", "F2")
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestResolveItem_ScrapesRenderedFragment(t *testing.T) {
	// Render a fragment, then drop the cache: the id must still resolve from
	// the markup alone.
	html, err := render.HTML(models.DomainFlights, render.Cards(models.DomainFlights, liveResults()))
	require.NoError(t, err)

	item, via, err := resolveItem(nil, html, "AI101")
	require.NoError(t, err)
	assert.Equal(t, "scraped", via)
	assert.Equal(t, "AI101", item.ResultID())

	price, err := ExtractPrice(item.PriceTag())
	require.NoError(t, err)
	assert.Equal(t, 5400.0, price)
}
