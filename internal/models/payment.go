package models

import "encoding/json"

// PaymentOrder is one booking attempt's provider order. It lives only for
// the duration of the checkout it belongs to and is never persisted: a
// stale order id cannot be completed after a reload.
type PaymentOrder struct {
	KeyID    string
	OrderID  string
	Amount   int64 // minor units, as the provider reports it
	Currency string
}

// PaymentOrderResponse mirrors POST /api/payments/create-order.
type PaymentOrderResponse struct {
	RazorpayKeyID string `json:"razorpay_key_id"`
	Order         struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"order"`
}

func (r PaymentOrderResponse) ToOrder() PaymentOrder {
	return PaymentOrder{
		KeyID:    r.RazorpayKeyID,
		OrderID:  r.Order.ID,
		Amount:   r.Order.Amount,
		Currency: r.Order.Currency,
	}
}

// CheckoutCompletion is the provider's success payload, forwarded verbatim
// to the verification endpoint.
type CheckoutCompletion struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// PaymentVerification mirrors POST /api/payments/verify-payment. Extra
// fields are kept raw for the booking record.
type PaymentVerification struct {
	PaymentID string          `json:"payment_id"`
	OrderID   string          `json:"order_id"`
	Raw       json.RawMessage `json:"-"`
}

// BookingConfirmation is the backend booking record echoed on creation.
// Shown once as a notification, then discarded.
type BookingConfirmation struct {
	ID        FlexID `json:"id"`
	Type      string `json:"type"`
	ItemID    FlexID `json:"item_id,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
