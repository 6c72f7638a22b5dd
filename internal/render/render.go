// Package render turns backend search records into display cards and the
// HTML fragment for the results area. Rendering is pure: same results in,
// same markup out, backend order preserved.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/voyagent/voyagent/internal/models"
)

// Card is one rendered result. ID and Price carry the raw backend values;
// everything else is display text. A Placeholder card stands in for an empty
// result set and is not bookable.
type Card struct {
	ID    string
	Title string
	Price string

	DepartTime string
	FromCity   string
	ArriveTime string
	ToCity     string

	Location string
	Rating   string

	Pickup  string
	Dropoff string

	Details []string

	Placeholder bool
	Message     string
}

var titleCaser = cases.Title(language.English)

// Cards maps results to display cards in backend order. An empty set yields
// a single placeholder card telling the user to adjust the search.
func Cards(domain models.Domain, results []models.Result) []Card {
	if len(results) == 0 {
		return []Card{{
			Placeholder: true,
			Message:     fmt.Sprintf("No %s found. Try different search criteria.", noun(domain)),
		}}
	}

	cards := make([]Card, 0, len(results))
	for _, r := range results {
		switch v := r.(type) {
		case models.Flight:
			cards = append(cards, flightCard(v))
		case models.Hotel:
			cards = append(cards, hotelCard(v))
		case models.Transport:
			cards = append(cards, transportCard(v))
		}
	}
	return cards
}

func flightCard(f models.Flight) Card {
	return Card{
		ID:         f.ID.String(),
		Title:      f.Airline,
		Price:      displayPrice(f.Price),
		DepartTime: f.DepartTime,
		FromCity:   f.FromCity,
		ArriveTime: f.ArriveTime,
		ToCity:     f.ToCity,
		Details:    []string{stopsLabel(f.Stops)},
	}
}

func hotelCard(h models.Hotel) Card {
	c := Card{
		ID:       h.ID.String(),
		Title:    h.Name,
		Price:    displayPrice(h.PricePerNight) + "/night",
		Location: h.Location,
		Rating:   fmt.Sprintf("★ %.1f", h.Rating),
	}
	for _, a := range h.Amenities {
		c.Details = append(c.Details, titleCaser.String(a))
	}
	return c
}

func transportCard(t models.Transport) Card {
	c := Card{
		ID:      t.ID.String(),
		Title:   titleCaser.String(t.Type),
		Price:   displayPrice(t.Price),
		Pickup:  t.Pickup,
		Dropoff: t.Dropoff,
	}
	if t.VehicleType != "" {
		c.Details = append(c.Details, titleCaser.String(t.VehicleType))
	}
	if t.Duration != "" {
		c.Details = append(c.Details, t.Duration)
	}
	return c
}

// displayPrice prefixes the rupee sign unless the backend already sent a
// currency symbol.
func displayPrice(m models.Money) string {
	s := strings.TrimSpace(m.String())
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "₹") || strings.HasPrefix(s, "$") {
		return s
	}
	return "₹" + s
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "Non-stop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func noun(domain models.Domain) string {
	switch domain {
	case models.DomainFlights:
		return "flights"
	case models.DomainHotels:
		return "hotels"
	default:
		return "transport options"
	}
}

// HTML renders the results fragment for a domain. The card markup carries
// the result id twice, on the card and on its book button, so the booking
// flow can recover ids from the fragment alone if it has to.
func HTML(domain models.Domain, cards []Card) (string, error) {
	var buf strings.Builder
	if err := resultTemplates.ExecuteTemplate(&buf, domain.String(), cards); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var resultTemplates = template.Must(template.New("results").Parse(`
{{- define "header" -}}
<div class="card-header"><h3>{{.Title}}</h3><span class="price">{{.Price}}</span></div>
{{- end -}}

{{- define "book" -}}
<button class="book-btn" data-id="{{.ID}}">Book Now</button>
{{- end -}}

{{- define "flights" -}}
{{- range . -}}
{{- if .Placeholder -}}
<div class="no-results">{{.Message}}</div>
{{- else -}}
<div class="result-card flight-card" data-id="{{.ID}}">
{{template "header" .}}
<div class="route">
<div class="departure"><strong>{{.DepartTime}}</strong><span>{{.FromCity}}</span></div>
<div class="arrival"><strong>{{.ArriveTime}}</strong><span>{{.ToCity}}</span></div>
</div>
<div class="flight-details">{{range .Details}}<span>{{.}}</span>{{end}}</div>
{{template "book" .}}
</div>
{{- end -}}
{{- end -}}
{{- end -}}

{{- define "hotels" -}}
{{- range . -}}
{{- if .Placeholder -}}
<div class="no-results">{{.Message}}</div>
{{- else -}}
<div class="result-card hotel-card" data-id="{{.ID}}">
{{template "header" .}}
<div class="location"><span>{{.Location}}</span></div>
<div class="rating"><span>{{.Rating}}</span></div>
<div class="amenities">{{range .Details}}<span>{{.}}</span>{{end}}</div>
{{template "book" .}}
</div>
{{- end -}}
{{- end -}}
{{- end -}}

{{- define "transport" -}}
{{- range . -}}
{{- if .Placeholder -}}
<div class="no-results">{{.Message}}</div>
{{- else -}}
<div class="result-card transport-card" data-id="{{.ID}}">
{{template "header" .}}
<div class="route">
<div class="pickup"><span>{{.Pickup}}</span></div>
<div class="dropoff"><span>{{.Dropoff}}</span></div>
</div>
<div class="transport-details">{{range .Details}}<span>{{.}}</span>{{end}}</div>
{{template "book" .}}
</div>
{{- end -}}
{{- end -}}
{{- end -}}
`))
