// Package api wraps the backend HTTP contract. One method per capability,
// one request per call, no retries and no state: failures propagate as
// RequestFailedError and the caller owns the user-facing messaging.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voyagent/voyagent/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues a single JSON POST and decodes the response into out. A non-2xx
// status becomes a RequestFailedError carrying the backend's detail/message
// field when one is present.
func (c *Client) do(ctx context.Context, op, path string, body, out any, token string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.RequestFailedError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.RequestFailedError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &models.RequestFailedError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: backendMessage(raw),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// backendMessage pulls the human-readable error out of a backend error body.
func backendMessage(raw []byte) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Detail != "":
			return body.Detail
		case body.Message != "":
			return body.Message
		case body.Error != "":
			return body.Error
		}
	}
	return string(raw)
}

func (c *Client) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.Flight, error) {
	var resp struct {
		Flights []models.Flight `json:"flights"`
	}
	if err := c.do(ctx, "search-flights", "/api/flights/search", q, &resp, ""); err != nil {
		return nil, err
	}
	return resp.Flights, nil
}

// SearchHotels accepts both response shapes the backend has been seen to
// produce: a bare array and {"hotels": [...]}. Neither is treated as legacy.
func (c *Client) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.Hotel, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "search-hotels", "/api/hotels/search", q, &raw, ""); err != nil {
		return nil, err
	}

	var hotels []models.Hotel
	if err := json.Unmarshal(raw, &hotels); err == nil {
		return hotels, nil
	}
	var wrapped struct {
		Hotels []models.Hotel `json:"hotels"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("search-hotels: decode response: %w", err)
	}
	return wrapped.Hotels, nil
}

func (c *Client) SearchTransport(ctx context.Context, q models.TransportQuery) ([]models.Transport, error) {
	var resp []models.Transport
	if err := c.do(ctx, "search-transport", "/api/transport/search", q, &resp, ""); err != nil {
		return nil, err
	}
	return resp, nil
}

type BookingRequest struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	PaymentID string `json:"payment_id,omitempty"`
	OrderID   string `json:"order_id,omitempty"`
}

func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*models.BookingConfirmation, error) {
	var resp models.BookingConfirmation
	if err := c.do(ctx, "create-booking", "/api/bookings/", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

type PaymentOrderRequest struct {
	BookingType string `json:"booking_type"`
	Item        any    `json:"item"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

func (c *Client) CreatePaymentOrder(ctx context.Context, req PaymentOrderRequest) (*models.PaymentOrderResponse, error) {
	var resp models.PaymentOrderResponse
	if err := c.do(ctx, "create-payment-order", "/api/payments/create-order", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyPayment(ctx context.Context, completion models.CheckoutCompletion) (*models.PaymentVerification, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "verify-payment", "/api/payments/verify-payment", completion, &raw, ""); err != nil {
		return nil, err
	}
	var resp models.PaymentVerification
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("verify-payment: decode response: %w", err)
	}
	resp.Raw = raw
	return &resp, nil
}

type ChatRequest struct {
	Message string             `json:"message"`
	Context models.ChatContext `json:"context"`
}

func (c *Client) Chat(ctx context.Context, req ChatRequest, token string) (*models.ChatReply, error) {
	var resp models.ChatReply
	if err := c.do(ctx, "ai-chat", "/api/ai/chat", req, &resp, token); err != nil {
		return nil, err
	}
	return &resp, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "login", "/api/auth/login", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "signup", "/api/auth/signup", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}
