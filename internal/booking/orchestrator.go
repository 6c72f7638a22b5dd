// Package booking runs the resolve → order → checkout → confirm pipeline
// for one item at a time.
package booking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/api"
	"github.com/voyagent/voyagent/internal/models"
	"github.com/voyagent/voyagent/internal/state"
)

// Backend is the slice of the API client the booking flow needs.
type Backend interface {
	CreatePaymentOrder(ctx context.Context, req api.PaymentOrderRequest) (*models.PaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, completion models.CheckoutCompletion) (*models.PaymentVerification, error)
	CreateBooking(ctx context.Context, req api.BookingRequest) (*models.BookingConfirmation, error)
}

var _ Backend = (*api.Client)(nil)

type Orchestrator struct {
	backend  Backend
	app      *state.App
	gateway  Gateway
	currency string
	logger   *zap.Logger
}

func NewOrchestrator(backend Backend, app *state.App, gateway Gateway, currency string, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		backend:  backend,
		app:      app,
		gateway:  gateway,
		currency: currency,
		logger:   logger,
	}
}

// Book takes one book request from item id to booking record. The stages are
// strictly ordered and each consumes its predecessor's output; failure at
// any stage aborts the rest, except that a booking failure after a verified
// payment surfaces as PartialSuccessError rather than a plain error.
func (o *Orchestrator) Book(ctx context.Context, domain models.Domain, id string) (*models.BookingConfirmation, error) {
	ctx, span := otel.Tracer("BookingOrchestrator").Start(ctx, "Book", trace.WithAttributes(
		attribute.String("booking.domain", domain.String()),
		attribute.String("booking.item_id", id),
	))
	defer span.End()

	item, err := o.resolve(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	order, err := o.createOrder(ctx, domain, item)
	if err != nil {
		return nil, err
	}

	completion, err := o.checkout(ctx, order)
	if err != nil {
		return nil, err
	}

	return o.confirm(ctx, domain, item, order, completion)
}

func (o *Orchestrator) resolve(ctx context.Context, domain models.Domain, id string) (models.Result, error) {
	_, span := otel.Tracer("BookingOrchestrator").Start(ctx, "ResolveItem")
	defer span.End()

	results, _ := o.app.Results(domain)
	item, via, err := resolveItem(results, o.app.RenderedHTML(domain), id)
	if err != nil {
		o.logger.Warn("Book request for unresolvable item",
			zap.String("domain", domain.String()),
			zap.String("item_id", id),
			zap.Int("live_results", len(results)))
		return nil, err
	}

	span.SetAttributes(attribute.String("booking.resolved_via", via))
	if via != "exact" {
		o.logger.Warn("Item resolved by fallback strategy",
			zap.String("domain", domain.String()),
			zap.String("item_id", id),
			zap.String("via", via))
	}
	return item, nil
}

func (o *Orchestrator) createOrder(ctx context.Context, domain models.Domain, item models.Result) (*models.PaymentOrder, error) {
	ctx, span := otel.Tracer("BookingOrchestrator").Start(ctx, "CreatePaymentOrder")
	defer span.End()

	amount, err := ExtractPrice(item.PriceTag())
	if err != nil {
		return nil, &models.ValidationError{Fields: []string{"price"}}
	}
	if amount <= 0 {
		o.logger.Warn("Refusing order for non-positive amount",
			zap.String("item_id", item.ResultID()),
			zap.Float64("amount", amount))
		return nil, &models.ValidationError{Fields: []string{"price"}}
	}

	resp, err := o.backend.CreatePaymentOrder(ctx, api.PaymentOrderRequest{
		BookingType: domain.BookingType(),
		Item:        item,
		Amount:      MinorUnits(amount),
		Currency:    o.currency,
	})
	if err != nil {
		return nil, err
	}

	order := resp.ToOrder()
	span.SetAttributes(attribute.String("booking.order_id", order.OrderID))
	o.logger.Info("Payment order created",
		zap.String("order_id", order.OrderID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency))
	return &order, nil
}

func (o *Orchestrator) checkout(ctx context.Context, order *models.PaymentOrder) (*models.CheckoutCompletion, error) {
	ctx, span := otel.Tracer("BookingOrchestrator").Start(ctx, "Checkout", trace.WithAttributes(
		attribute.String("booking.order_id", order.OrderID),
	))
	defer span.End()

	res, err := o.gateway.Open(ctx, *order)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case CheckoutCompleted:
		return &res.Completion, nil
	case CheckoutCancelled:
		o.logger.Info("Checkout cancelled by user", zap.String("order_id", order.OrderID))
		return nil, models.ErrPaymentCancelled
	default:
		return nil, &models.PaymentFailedError{OrderID: order.OrderID, Reason: res.Reason}
	}
}

func (o *Orchestrator) confirm(ctx context.Context, domain models.Domain, item models.Result, order *models.PaymentOrder, completion *models.CheckoutCompletion) (*models.BookingConfirmation, error) {
	ctx, span := otel.Tracer("BookingOrchestrator").Start(ctx, "ConfirmBooking", trace.WithAttributes(
		attribute.String("booking.order_id", order.OrderID),
	))
	defer span.End()

	verification, err := o.backend.VerifyPayment(ctx, *completion)
	if err != nil {
		return nil, &models.PaymentFailedError{OrderID: order.OrderID, Reason: "verification failed: " + err.Error()}
	}

	// Some backend versions do not echo the ids back; the completion payload
	// is authoritative in that case.
	paymentID := verification.PaymentID
	if paymentID == "" {
		paymentID = completion.PaymentID
	}
	orderID := verification.OrderID
	if orderID == "" {
		orderID = order.OrderID
	}

	confirmation, err := o.backend.CreateBooking(ctx, api.BookingRequest{
		Type:      domain.BookingType(),
		ID:        item.ResultID(),
		PaymentID: paymentID,
		OrderID:   orderID,
	})
	if err != nil {
		// The charge went through; this must never degrade into a generic
		// failure message.
		o.logger.Error("Booking creation failed after verified payment",
			zap.String("payment_id", paymentID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, &models.PartialSuccessError{
			PaymentID: paymentID,
			OrderID:   orderID,
			Err:       err,
		}
	}

	o.logger.Info("Booking confirmed",
		zap.String("booking_id", confirmation.ID.String()),
		zap.String("payment_id", paymentID))
	return confirmation, nil
}
