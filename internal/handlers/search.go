package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/observability/metrics"
	"github.com/voyagent/voyagent/internal/search"
	"github.com/voyagent/voyagent/internal/state"
)

type SearchHandlers struct {
	controller *search.Controller
	app        *state.App
	logger     *zap.Logger
}

func NewSearchHandlers(controller *search.Controller, app *state.App, logger *zap.Logger) *SearchHandlers {
	return &SearchHandlers{controller: controller, app: app, logger: logger}
}

// Submit handles POST /search/:domain. Form fields and JSON bodies are both
// accepted; the form is what the search panels post.
func (h *SearchHandlers) Submit(c *gin.Context) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	form, err := readForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable request body"})
		return
	}

	metrics.Get().SearchRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("domain", domain.String())))

	h.app.SetActiveTab(domain)

	outcome, err := h.controller.Search(c.Request.Context(), domain, form)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.Get().SearchResultsReturned.Record(c.Request.Context(), int64(len(outcome.Cards)),
		metric.WithAttributes(attribute.String("domain", domain.String())))

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"domain":        outcome.Domain,
		"html":          outcome.HTML,
		"revealResults": outcome.RevealResults,
		"scrollTo":      outcome.ScrollTo,
		"coalesced":     outcome.Coalesced,
	})
}

// Tab handles POST /search/tab/:domain: switch the active tab without
// searching.
func (h *SearchHandlers) Tab(c *gin.Context) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.app.SetActiveTab(domain)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"activeTab": domain,
		"prefill":   h.app.Prefill(domain),
	})
}

// readForm flattens the request into field name → value.
func readForm(c *gin.Context) (search.FormValues, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		form := search.FormValues{}
		if err := c.ShouldBindJSON(&form); err != nil {
			return nil, err
		}
		return form, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	form := make(search.FormValues, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form, nil
}
