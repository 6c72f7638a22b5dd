// Package handlers exposes the controllers over gin. Every error leaves as a
// notification payload; handlers never leak raw error taxonomy to clients.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/observability/metrics"
)

// statusFor picks the HTTP status for a controller error. A cancelled
// payment is a user outcome, not a server fault, and stays 200.
func statusFor(err error) int {
	var (
		validation *models.ValidationError
		payFailed  *models.PaymentFailedError
		partial    *models.PartialSuccessError
		reqFailed  *models.RequestFailedError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrPaymentCancelled):
		return http.StatusOK
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &payFailed):
		return http.StatusPaymentRequired
	case errors.As(err, &partial):
		return http.StatusBadGateway
	case errors.As(err, &reqFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a notification envelope.
func respondError(c *gin.Context, err error) {
	n := models.NotificationFor(err)
	metrics.Get().NotificationsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("level", string(n.Level))))
	c.JSON(statusFor(err), gin.H{
		"success":      false,
		"notification": n,
	})
}
