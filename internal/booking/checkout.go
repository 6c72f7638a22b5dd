package booking

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/voyagent/voyagent/internal/models"
)

// CheckoutStatus is the terminal state of one hosted checkout.
type CheckoutStatus string

const (
	CheckoutCompleted CheckoutStatus = "completed"
	CheckoutCancelled CheckoutStatus = "cancelled"
	CheckoutFailed    CheckoutStatus = "failed"
)

// CheckoutResult is what a checkout resolved to. Completion is set only for
// CheckoutCompleted; Reason only for CheckoutFailed.
type CheckoutResult struct {
	Status     CheckoutStatus
	Completion models.CheckoutCompletion
	Reason     string
}

// Gateway hands a payment order to the provider's checkout and blocks until
// the user finishes with it, one way or another. A dismissed checkout is a
// cancellation, not a failure.
type Gateway interface {
	Open(ctx context.Context, order models.PaymentOrder) (CheckoutResult, error)
}

// HostedGateway drives the provider-hosted checkout. Open parks the booking
// flow on a channel keyed by order id; the provider's callbacks resume it.
// There is no timeout: an abandoned checkout holds its flow until the user
// or the context ends it.
type HostedGateway struct {
	mu      sync.Mutex
	pending map[string]chan CheckoutResult
	logger  *zap.Logger
}

func NewHostedGateway(logger *zap.Logger) *HostedGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostedGateway{
		pending: make(map[string]chan CheckoutResult),
		logger:  logger,
	}
}

func (g *HostedGateway) Open(ctx context.Context, order models.PaymentOrder) (CheckoutResult, error) {
	ch := make(chan CheckoutResult, 1)

	g.mu.Lock()
	g.pending[order.OrderID] = ch
	g.mu.Unlock()

	g.logger.Info("Checkout opened",
		zap.String("order_id", order.OrderID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency))

	defer func() {
		g.mu.Lock()
		delete(g.pending, order.OrderID)
		g.mu.Unlock()
	}()

	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return CheckoutResult{}, ctx.Err()
	}
}

// Resolve delivers the provider callback for an order. Unknown order ids are
// dropped: either the checkout already resolved or it never existed here.
func (g *HostedGateway) Resolve(orderID string, res CheckoutResult) bool {
	g.mu.Lock()
	ch, ok := g.pending[orderID]
	if ok {
		delete(g.pending, orderID)
	}
	g.mu.Unlock()

	if !ok {
		g.logger.Warn("Checkout callback for unknown order",
			zap.String("order_id", orderID),
			zap.String("status", string(res.Status)))
		return false
	}
	ch <- res
	return true
}

func (g *HostedGateway) Complete(orderID string, completion models.CheckoutCompletion) bool {
	return g.Resolve(orderID, CheckoutResult{Status: CheckoutCompleted, Completion: completion})
}

func (g *HostedGateway) Cancel(orderID string) bool {
	return g.Resolve(orderID, CheckoutResult{Status: CheckoutCancelled})
}

func (g *HostedGateway) Fail(orderID, reason string) bool {
	return g.Resolve(orderID, CheckoutResult{Status: CheckoutFailed, Reason: reason})
}
