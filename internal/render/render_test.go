package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/models"
)

func parseFragment(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestCards_PreservesBackendOrder(t *testing.T) {
	results := []models.Result{
		models.Flight{ID: "F3", Airline: "Gamma Air", Price: "3000"},
		models.Flight{ID: "F1", Airline: "Alpha Air", Price: "1000"},
		models.Flight{ID: "F2", Airline: "Beta Air", Price: "2000"},
	}

	cards := Cards(models.DomainFlights, results)
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"F3", "F1", "F2"}, []string{cards[0].ID, cards[1].ID, cards[2].ID})
}

func TestCards_EmptySetGetsPlaceholder(t *testing.T) {
	cards := Cards(models.DomainHotels, nil)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].Placeholder)
	assert.Contains(t, cards[0].Message, "No hotels found")
}

func TestHTML_FlightCards(t *testing.T) {
	results := []models.Result{
		models.Flight{
			ID: "AI101", Airline: "Air India",
			FromCity: "DEL", ToCity: "GOI",
			DepartTime: "06:00", ArriveTime: "08:30",
			Price: "₹5,400", Stops: 0,
		},
		models.Flight{ID: "6E22", Airline: "IndiGo", Price: "4800", Stops: 2},
	}

	html, err := HTML(models.DomainFlights, Cards(models.DomainFlights, results))
	require.NoError(t, err)
	doc := parseFragment(t, html)

	t.Run("every card carries its id for the booking flow", func(t *testing.T) {
		assert.Equal(t, 2, doc.Find(".result-card").Length())
		first := doc.Find(`.result-card[data-id="AI101"]`)
		require.Equal(t, 1, first.Length())
		assert.Equal(t, "AI101", first.Find(".book-btn").AttrOr("data-id", ""))
	})

	t.Run("header shows airline and raw price tag", func(t *testing.T) {
		first := doc.Find(`.result-card[data-id="AI101"]`)
		assert.Equal(t, "Air India", first.Find(".card-header h3").Text())
		assert.Equal(t, "₹5,400", first.Find(".card-header .price").Text())
	})

	t.Run("route shows departure and arrival", func(t *testing.T) {
		first := doc.Find(`.result-card[data-id="AI101"]`)
		assert.Equal(t, "06:00", first.Find(".departure strong").Text())
		assert.Equal(t, "DEL", first.Find(".departure span").Text())
		assert.Equal(t, "GOI", first.Find(".arrival span").Text())
	})

	t.Run("stops label", func(t *testing.T) {
		assert.Contains(t, doc.Find(`.result-card[data-id="AI101"] .flight-details`).Text(), "Non-stop")
		assert.Contains(t, doc.Find(`.result-card[data-id="6E22"] .flight-details`).Text(), "2 stops")
	})

	t.Run("bare numeric prices get the currency sign", func(t *testing.T) {
		assert.Equal(t, "₹4800", doc.Find(`.result-card[data-id="6E22"] .price`).Text())
	})
}

func TestHTML_HotelCards(t *testing.T) {
	results := []models.Result{
		models.Hotel{
			ID: "H1", Name: "Sea Breeze", PricePerNight: "3200",
			Location: "Calangute", Rating: 4.5, Amenities: []string{"wifi", "pool"},
		},
	}

	html, err := HTML(models.DomainHotels, Cards(models.DomainHotels, results))
	require.NoError(t, err)
	doc := parseFragment(t, html)

	card := doc.Find(`.result-card[data-id="H1"]`)
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "Sea Breeze", card.Find(".card-header h3").Text())
	assert.Equal(t, "₹3200/night", card.Find(".price").Text())
	assert.Equal(t, "Calangute", card.Find(".location span").Text())
	assert.Equal(t, "★ 4.5", card.Find(".rating span").Text())
	assert.Equal(t, 2, card.Find(".amenities span").Length())
}

func TestHTML_TransportCards(t *testing.T) {
	results := []models.Result{
		models.Transport{
			ID: "T7", Type: "cab", Price: "650",
			Pickup: "Airport", Dropoff: "Panaji",
			VehicleType: "sedan", Duration: "45 min",
		},
	}

	html, err := HTML(models.DomainTransport, Cards(models.DomainTransport, results))
	require.NoError(t, err)
	doc := parseFragment(t, html)

	card := doc.Find(`.result-card[data-id="T7"]`)
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "Cab", card.Find(".card-header h3").Text())
	assert.Equal(t, "Airport", card.Find(".pickup span").Text())
	assert.Equal(t, "Panaji", card.Find(".dropoff span").Text())
	details := card.Find(".transport-details span")
	assert.Equal(t, 2, details.Length())
	assert.Contains(t, details.Text(), "Sedan")
}

func TestHTML_NoResultsFragment(t *testing.T) {
	html, err := HTML(models.DomainFlights, Cards(models.DomainFlights, nil))
	require.NoError(t, err)
	doc := parseFragment(t, html)

	assert.Equal(t, 0, doc.Find(".result-card").Length())
	assert.Contains(t, doc.Find(".no-results").Text(), "No flights found")
}

func TestHTML_RerenderingIsIdempotent(t *testing.T) {
	results := []models.Result{
		models.Flight{ID: "AI101", Airline: "Air India", FromCity: "DEL", ToCity: "GOI", Price: "₹5,400"},
		models.Flight{ID: "6E22", Airline: "IndiGo", Price: "4800", Stops: 1},
	}

	first, err := HTML(models.DomainFlights, Cards(models.DomainFlights, results))
	require.NoError(t, err)
	second, err := HTML(models.DomainFlights, Cards(models.DomainFlights, results))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHTML_EscapesBackendText(t *testing.T) {
	results := []models.Result{
		models.Flight{ID: "X", Airline: `<script>alert(1)</script>`, Price: "1"},
	}
	html, err := HTML(models.DomainFlights, Cards(models.DomainFlights, results))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
