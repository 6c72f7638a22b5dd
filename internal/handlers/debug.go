package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/render"
	"github.com/voyagent/voyagent/internal/state"
)

// DebugHandlers is mounted only with DEBUG=true. Seeding lets the booking
// and render flows be driven without a live backend.
type DebugHandlers struct {
	app    *state.App
	logger *zap.Logger
}

func NewDebugHandlers(app *state.App, logger *zap.Logger) *DebugHandlers {
	return &DebugHandlers{app: app, logger: logger}
}

type seedRequest struct {
	Flights   []models.Flight    `json:"flights,omitempty"`
	Hotels    []models.Hotel     `json:"hotels,omitempty"`
	Transport []models.Transport `json:"transport,omitempty"`
}

// Seed handles POST /debug/seed: replace result caches with the given
// records and render them, exactly as a search would.
func (h *DebugHandlers) Seed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable seed payload"})
		return
	}

	seeded := map[string]int{}
	if len(req.Flights) > 0 {
		h.seedDomain(models.DomainFlights, toResults(req.Flights))
		seeded[models.DomainFlights.String()] = len(req.Flights)
	}
	if len(req.Hotels) > 0 {
		h.seedDomain(models.DomainHotels, toResults(req.Hotels))
		seeded[models.DomainHotels.String()] = len(req.Hotels)
	}
	if len(req.Transport) > 0 {
		h.seedDomain(models.DomainTransport, toResults(req.Transport))
		seeded[models.DomainTransport.String()] = len(req.Transport)
	}

	h.logger.Info("Debug seed applied", zap.Any("seeded", seeded))
	c.JSON(http.StatusOK, gin.H{"success": true, "seeded": seeded})
}

// Metrics handles GET /debug/cache: the result-cache counters.
func (h *DebugHandlers) Metrics(c *gin.Context) {
	m := h.app.CacheMetricsSnapshot()
	c.JSON(http.StatusOK, gin.H{
		"hits":   m.Hits,
		"misses": m.Misses,
		"sets":   m.Sets,
	})
}

func (h *DebugHandlers) seedDomain(domain models.Domain, results []models.Result) {
	h.app.SetResults(domain, results)
	if html, err := render.HTML(domain, render.Cards(domain, results)); err == nil {
		h.app.SetRenderedHTML(domain, html)
	}
}

func toResults[T models.Result](in []T) []models.Result {
	out := make([]models.Result, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
