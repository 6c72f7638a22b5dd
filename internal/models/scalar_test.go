package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_UnmarshalJSON(t *testing.T) {
	t.Run("it accepts a string id", func(t *testing.T) {
		var f Flight
		require.NoError(t, json.Unmarshal([]byte(`{"id":"AI101"}`), &f))
		assert.Equal(t, "AI101", f.ID.String())
	})

	t.Run("it accepts a numeric id and keeps its textual form", func(t *testing.T) {
		var f Flight
		require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &f))
		assert.Equal(t, "1", f.ID.String())
	})

	t.Run("it treats null as empty", func(t *testing.T) {
		var f Flight
		require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &f))
		assert.Equal(t, "", f.ID.String())
	})
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	t.Run("it keeps a decorated price string untouched", func(t *testing.T) {
		var h Hotel
		require.NoError(t, json.Unmarshal([]byte(`{"price_per_night":"₹8,500"}`), &h))
		assert.Equal(t, "₹8,500", h.PricePerNight.String())
	})

	t.Run("it renders a bare number without trailing zeros", func(t *testing.T) {
		var h Hotel
		require.NoError(t, json.Unmarshal([]byte(`{"price_per_night":300.0}`), &h))
		assert.Equal(t, "300", h.PricePerNight.String())
	})
}
