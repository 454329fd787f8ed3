// Package payment defines the payment collaborator consumed by checkout and
// its two providers: a real payment-intent API client and a simulator for
// the demo store.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Intent is the opaque client-confirmation handle issued before charging.
type Intent struct {
	ID           string
	ClientSecret string
}

// Card carries the details confirmed against an intent.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// Metadata identifies the customer on the payment provider's side.
type Metadata struct {
	CustomerName  string
	CustomerEmail string
}

// Result is a successful confirmation. Reference is the payment reference
// used as the order id when available.
type Result struct {
	Reference string
}

// Provider creates and confirms payment intents. Confirm failures carry a
// human-readable message and are surfaced verbatim to the buyer.
type Provider interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, meta Metadata) (Intent, error)
	Confirm(ctx context.Context, intent Intent, card Card) (Result, error)
}

// Simulator is the demo-store provider: it synthesizes a successful payment
// after a fixed delay. No actual payment is processed.
type Simulator struct {
	Delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{Delay: delay}
}

func (s *Simulator) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, meta Metadata) (Intent, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Intent{}, fmt.Errorf("payment: failed to generate intent id: %w", err)
	}
	return Intent{ID: "sim_" + id.String(), ClientSecret: "sim_secret"}, nil
}

func (s *Simulator) Confirm(ctx context.Context, intent Intent, card Card) (Result, error) {
	select {
	case <-time.After(s.Delay):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	return Result{Reference: intent.ID}, nil
}
