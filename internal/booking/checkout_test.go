package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/models"
)

func openAsync(g *HostedGateway, order models.PaymentOrder) chan CheckoutResult {
	ch := make(chan CheckoutResult, 1)
	go func() {
		res, err := g.Open(context.Background(), order)
		if err == nil {
			ch <- res
		}
		close(ch)
	}()
	return ch
}

func waitForPending(t *testing.T, g *HostedGateway, orderID string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		g.mu.Lock()
		_, ok := g.pending[orderID]
		g.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("checkout never parked")
}

func TestHostedGateway_CompleteResumesCheckout(t *testing.T) {
	g := NewHostedGateway(nil)
	order := models.PaymentOrder{OrderID: "order_1", Amount: 100, Currency: "INR"}

	results := openAsync(g, order)
	waitForPending(t, g, "order_1")

	completion := models.CheckoutCompletion{PaymentID: "pay_1", OrderID: "order_1", Signature: "sig"}
	require.True(t, g.Complete("order_1", completion))

	res := <-results
	assert.Equal(t, CheckoutCompleted, res.Status)
	assert.Equal(t, "pay_1", res.Completion.PaymentID)
}

func TestHostedGateway_CancelAndFail(t *testing.T) {
	g := NewHostedGateway(nil)

	t.Run("dismissal is a cancellation", func(t *testing.T) {
		results := openAsync(g, models.PaymentOrder{OrderID: "order_2"})
		waitForPending(t, g, "order_2")
		require.True(t, g.Cancel("order_2"))
		assert.Equal(t, CheckoutCancelled, (<-results).Status)
	})

	t.Run("provider errors are failures with a reason", func(t *testing.T) {
		results := openAsync(g, models.PaymentOrder{OrderID: "order_3"})
		waitForPending(t, g, "order_3")
		require.True(t, g.Fail("order_3", "card declined"))
		res := <-results
		assert.Equal(t, CheckoutFailed, res.Status)
		assert.Equal(t, "card declined", res.Reason)
	})
}

func TestHostedGateway_UnknownOrderIsDropped(t *testing.T) {
	g := NewHostedGateway(nil)
	assert.False(t, g.Cancel("never-opened"))
}

func TestHostedGateway_ContextCancelAbandonsCheckout(t *testing.T) {
	g := NewHostedGateway(nil)
	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error, 1)
	go func() {
		_, err := g.Open(ctx, models.PaymentOrder{OrderID: "order_4"})
		errs <- err
	}()
	waitForPending(t, g, "order_4")

	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)

	// The abandoned order is cleaned up; a late callback finds nothing.
	deadline := time.Now().Add(time.Second)
	for g.Cancel("order_4") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.False(t, g.Cancel("order_4"))
}
