package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/booking"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/observability/metrics"
)

type BookingHandlers struct {
	orchestrator *booking.Orchestrator
	gateway      *booking.HostedGateway
	logger       *zap.Logger
}

func NewBookingHandlers(orchestrator *booking.Orchestrator, gateway *booking.HostedGateway, logger *zap.Logger) *BookingHandlers {
	return &BookingHandlers{orchestrator: orchestrator, gateway: gateway, logger: logger}
}

// Book handles POST /bookings/:domain/:id. The request blocks while the
// hosted checkout is open; the checkout callbacks arrive on separate
// requests and resume it.
func (h *BookingHandlers) Book(c *gin.Context) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	id := c.Param("id")

	m := metrics.Get()
	m.BookingAttemptsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("domain", domain.String())))

	confirmation, err := h.orchestrator.Book(c.Request.Context(), domain, id)
	if err != nil {
		m.BookingFailuresTotal.Add(c.Request.Context(), 1,
			metric.WithAttributes(attribute.String("domain", domain.String())))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": confirmation,
		"notification": models.NewNotification(models.NotifySuccess,
			"Booking confirmed! Reference "+confirmation.ID.String()),
	})
}

type checkoutFailure struct {
	Reason string `json:"reason"`
}

// Complete handles POST /checkout/:orderID/complete with the provider's
// success payload.
func (h *BookingHandlers) Complete(c *gin.Context) {
	var completion models.CheckoutCompletion
	if err := c.ShouldBindJSON(&completion); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed completion payload"})
		return
	}
	if completion.OrderID == "" {
		completion.OrderID = c.Param("orderID")
	}
	h.resolve(c, booking.CheckoutCompleted, func(orderID string) bool {
		return h.gateway.Complete(orderID, completion)
	})
}

// Cancel handles POST /checkout/:orderID/cancel, the dismiss path.
func (h *BookingHandlers) Cancel(c *gin.Context) {
	h.resolve(c, booking.CheckoutCancelled, h.gateway.Cancel)
}

// Fail handles POST /checkout/:orderID/fail with the provider's error.
func (h *BookingHandlers) Fail(c *gin.Context) {
	var failure checkoutFailure
	_ = c.ShouldBindJSON(&failure)
	if failure.Reason == "" {
		failure.Reason = "payment provider reported a failure"
	}
	h.resolve(c, booking.CheckoutFailed, func(orderID string) bool {
		return h.gateway.Fail(orderID, failure.Reason)
	})
}

func (h *BookingHandlers) resolve(c *gin.Context, status booking.CheckoutStatus, fn func(orderID string) bool) {
	orderID := c.Param("orderID")
	if !fn(orderID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no open checkout for order"})
		return
	}
	metrics.Get().CheckoutOutcomesTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("status", string(status))))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
