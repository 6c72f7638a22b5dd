// Package search owns the tabbed search flow: validate form input, issue at
// most one backend request per domain at a time, and replace that domain's
// result cache wholesale on success.
package search

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/render"
	"github.com/voyagent/voyagent/internal/state"
)

// Backend is the slice of the API client the search flow needs.
type Backend interface {
	SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.Flight, error)
	SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.Hotel, error)
	SearchTransport(ctx context.Context, q models.TransportQuery) ([]models.Transport, error)
}

// FormValues is a submitted search form, field name → raw value.
type FormValues map[string]string

// Outcome is a displayed search: cards in backend order, the rendered
// fragment, and the reveal/scroll directives for the results area.
type Outcome struct {
	Domain        models.Domain
	Cards         []render.Card
	HTML          string
	RevealResults bool
	ScrollTo      string
	Coalesced     bool
}

type Controller struct {
	backend Backend
	app     *state.App
	group   singleflight.Group
	logger  *zap.Logger
}

func NewController(backend Backend, app *state.App, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{backend: backend, app: app, logger: logger}
}

// Search runs one submission through validate → in-flight → displayed.
// Validation failures return before any network work. While a search for the
// same domain is in flight, later submissions join it and receive its
// outcome instead of racing a second request into the cache.
func (c *Controller) Search(ctx context.Context, domain models.Domain, form FormValues) (*Outcome, error) {
	if err := validate(domain, form); err != nil {
		c.logger.Info("Search rejected by validation",
			zap.String("domain", domain.String()),
			zap.Strings("missing", err.Fields))
		return nil, err
	}

	leader := false
	v, err, _ := c.group.Do(domain.String(), func() (any, error) {
		leader = true
		return c.run(ctx, domain, form)
	})
	if err != nil {
		return nil, err
	}

	out := v.(*Outcome)
	if !leader {
		// This submission arrived while a search for the domain was in
		// flight; it was suppressed behind it and shares its outcome.
		copied := *out
		copied.Coalesced = true
		c.logger.Info("Search coalesced with in-flight request",
			zap.String("domain", domain.String()))
		return &copied, nil
	}
	return out, nil
}

func (c *Controller) run(ctx context.Context, domain models.Domain, form FormValues) (*Outcome, error) {
	results, err := c.fetch(ctx, domain, form)
	if err != nil {
		// Failed searches leave the previous cache untouched.
		c.logger.Warn("Search failed",
			zap.String("domain", domain.String()), zap.Error(err))
		return nil, err
	}

	c.app.SetResults(domain, results)

	cards := render.Cards(domain, results)
	html, err := render.HTML(domain, cards)
	if err != nil {
		return nil, err
	}
	c.app.SetRenderedHTML(domain, html)

	c.logger.Info("Search displayed",
		zap.String("domain", domain.String()),
		zap.Int("results", len(results)))

	return &Outcome{
		Domain:        domain,
		Cards:         cards,
		HTML:          html,
		RevealResults: true,
		ScrollTo:      "resultsSection",
	}, nil
}

func (c *Controller) fetch(ctx context.Context, domain models.Domain, form FormValues) ([]models.Result, error) {
	switch domain {
	case models.DomainFlights:
		q := models.FlightQuery{
			From:       NormalizeLocation(form["from"]),
			To:         NormalizeLocation(form["to"]),
			DepartDate: form["departDate"],
			ReturnDate: form["returnDate"],
			Passengers: defaulted(form["passengers"], "1"),
		}
		flights, err := c.backend.SearchFlights(ctx, q)
		if err != nil {
			return nil, err
		}
		return asResults(flights), nil

	case models.DomainHotels:
		q := models.HotelQuery{
			Location: form["location"],
			CheckIn:  form["checkIn"],
			CheckOut: form["checkOut"],
			Guests:   defaulted(form["guests"], "1"),
			Rooms:    defaulted(form["rooms"], "1"),
		}
		hotels, err := c.backend.SearchHotels(ctx, q)
		if err != nil {
			return nil, err
		}
		return asResults(hotels), nil

	default:
		q := models.TransportQuery{
			Pickup:  form["pickup"],
			Dropoff: form["dropoff"],
			Date:    form["date"],
			Time:    form["time"],
			Type:    defaulted(form["type"], "car"),
		}
		transport, err := c.backend.SearchTransport(ctx, q)
		if err != nil {
			return nil, err
		}
		return asResults(transport), nil
	}
}

// requiredFields per domain; submissions missing any of these never reach
// the network.
var requiredFields = map[models.Domain][]string{
	models.DomainFlights:   {"from", "to", "departDate"},
	models.DomainHotels:    {"location", "checkIn", "checkOut"},
	models.DomainTransport: {"pickup", "dropoff", "date", "time"},
}

func validate(domain models.Domain, form FormValues) *models.ValidationError {
	var missing []string
	for _, field := range requiredFields[domain] {
		if form[field] == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &models.ValidationError{Fields: missing}
	}
	return nil
}

func defaulted(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func asResults[T models.Result](in []T) []models.Result {
	out := make([]models.Result, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
