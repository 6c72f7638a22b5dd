// Package metrics holds the application's metric instruments, initialized
// once against the global meter provider.
package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type AppMetrics struct {
	HTTPRequestsTotal     metric.Int64Counter
	HTTPRequestDuration   metric.Float64Histogram
	SearchRequestsTotal   metric.Int64Counter
	SearchResultsReturned metric.Int64Histogram
	BookingAttemptsTotal  metric.Int64Counter
	BookingFailuresTotal  metric.Int64Counter
	CheckoutOutcomesTotal metric.Int64Counter
	ChatMessagesTotal     metric.Int64Counter
	AuthRequestsTotal     metric.Int64Counter
	NotificationsTotal    metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the instruments once. Must run after the meter
// provider is set.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("voyagent")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"search_requests_total",
			metric.WithDescription("Total number of search submissions per domain"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_requests_total: %v", err)
		}

		m.SearchResultsReturned, err = meter.Int64Histogram(
			"search_results_returned",
			metric.WithDescription("Result set sizes returned by searches"),
			metric.WithUnit("{result}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_results_returned: %v", err)
		}

		m.BookingAttemptsTotal, err = meter.Int64Counter(
			"booking_attempts_total",
			metric.WithDescription("Total number of booking attempts started"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create booking_attempts_total: %v", err)
		}

		m.BookingFailuresTotal, err = meter.Int64Counter(
			"booking_failures_total",
			metric.WithDescription("Booking attempts that ended in an error"),
			metric.WithUnit("{failure}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create booking_failures_total: %v", err)
		}

		m.CheckoutOutcomesTotal, err = meter.Int64Counter(
			"checkout_outcomes_total",
			metric.WithDescription("Checkout resolutions by terminal status"),
			metric.WithUnit("{checkout}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create checkout_outcomes_total: %v", err)
		}

		m.ChatMessagesTotal, err = meter.Int64Counter(
			"chat_messages_total",
			metric.WithDescription("Chat messages exchanged with the assistant"),
			metric.WithUnit("{message}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chat_messages_total: %v", err)
		}

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of authentication requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_requests_total: %v", err)
		}

		m.NotificationsTotal, err = meter.Int64Counter(
			"notifications_total",
			metric.WithDescription("Notifications emitted to the client by level"),
			metric.WithUnit("{notification}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create notifications_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized instruments. Panics if InitAppMetrics was not
// called at startup.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
