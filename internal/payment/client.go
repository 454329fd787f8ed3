package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// APIClient talks to the payment-intent endpoint (a thin serverless wrapper
// around the card processor). CreateIntent posts the charge details and gets
// back a confirmation handle; Confirm submits the card against that handle.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// DeclinedError carries the processor's human-readable failure message,
// which checkout shows to the buyer verbatim.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

type intentRequest struct {
	Amount        int64  `json:"amount"` // minor units
	Currency      string `json:"currency"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

type intentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type confirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	CardNumber      string `json:"cardNumber"`
	ExpMonth        int    `json:"expMonth"`
	ExpYear         int    `json:"expYear"`
	CVC             string `json:"cvc"`
}

type confirmResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
	Message   string `json:"message"`
}

func (c *APIClient) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, meta Metadata) (Intent, error) {
	body := intentRequest{
		Amount:        amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:      currency,
		CustomerName:  meta.CustomerName,
		CustomerEmail: meta.CustomerEmail,
	}

	var out intentResponse
	if err := c.post(ctx, "/create-payment-intent", body, &out); err != nil {
		return Intent{}, err
	}
	return Intent{ID: out.PaymentIntentID, ClientSecret: out.ClientSecret}, nil
}

func (c *APIClient) Confirm(ctx context.Context, intent Intent, card Card) (Result, error) {
	body := confirmRequest{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		CardNumber:      card.Number,
		ExpMonth:        card.ExpMonth,
		ExpYear:         card.ExpYear,
		CVC:             card.CVC,
	}

	var out confirmResponse
	if err := c.post(ctx, "/confirm-payment", body, &out); err != nil {
		return Result{}, err
	}
	if out.Status != "succeeded" {
		msg := out.Message
		if msg == "" {
			msg = "payment was not confirmed"
		}
		return Result{}, &DeclinedError{Message: msg}
	}
	return Result{Reference: out.PaymentID}, nil
}

func (c *APIClient) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("payment: encode %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("payment: build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The endpoint reports failures as {"message": "..."}; surface that
		// message to the buyer when present.
		var failure struct {
			Message string `json:"message"`
		}
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if err := json.Unmarshal(snippet, &failure); err == nil && failure.Message != "" {
			return &DeclinedError{Message: failure.Message}
		}
		return fmt.Errorf("payment: %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("payment: decode %s response: %w", path, err)
	}
	return nil
}

// IsDeclined reports whether err is a processor decline (as opposed to a
// transport failure).
func IsDeclined(err error) bool {
	var d *DeclinedError
	return errors.As(err, &d)
}
