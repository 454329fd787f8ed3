// Package checkout orchestrates placing an order: it snapshots the basket,
// confirms the payment, records the order, fires the notification emails,
// and clears the basket.
package checkout

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/email"
	"github.com/marishandmade/storefront/internal/payment"
)

// ShippingFee is the flat UK shipping charge layered onto the basket total
// at checkout. The basket itself never includes it.
var ShippingFee = decimal.RequireFromString("4.99")

var ErrEmptyBasket = errors.New("checkout: basket is empty")

// ShippingDetails are the fields collected from the checkout form. UK-only.
type ShippingDetails struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	Postcode  string
}

// Orchestrator drives the checkout flow against its collaborators. Payment
// failure is the only failure class that blocks progress: it is returned
// verbatim and the basket is left intact for a retry. Email failures are
// logged and swallowed.
type Orchestrator struct {
	store    *admin.Store
	payments payment.Provider
	emails   email.Sender
}

func New(store *admin.Store, payments payment.Provider, emails email.Sender) *Orchestrator {
	return &Orchestrator{
		store:    store,
		payments: payments,
		emails:   emails,
	}
}

// PlaceOrder runs one checkout attempt for the given basket. On success the
// order has been recorded, the emails are in flight, and the basket is
// cleared. On failure nothing is recorded and the basket is preserved.
func (o *Orchestrator) PlaceOrder(ctx context.Context, basket *cart.Store, details ShippingDetails, card payment.Card) (admin.Order, error) {
	items := basket.Items()
	if len(items) == 0 {
		return admin.Order{}, ErrEmptyBasket
	}

	total := basket.Total().Add(ShippingFee)
	meta := payment.Metadata{
		CustomerName:  details.FirstName + " " + details.LastName,
		CustomerEmail: details.Email,
	}

	intent, err := o.payments.CreateIntent(ctx, total, "gbp", meta)
	if err != nil {
		return admin.Order{}, err
	}

	result, err := o.payments.Confirm(ctx, intent, card)
	if err != nil {
		return admin.Order{}, err
	}

	order := admin.Order{
		ID:           orderID(result.Reference),
		CustomerName: meta.CustomerName,
		Email:        details.Email,
		Address:      details.Address,
		City:         details.City,
		Postcode:     details.Postcode,
		Items:        items,
		Total:        total,
		Date:         time.Now().UTC(),
		Status:       admin.StatusPending,
		IsGift:       basket.IsGift(),
		GiftNote:     basket.GiftNote(),
		PaymentRef:   result.Reference,
	}

	o.store.AddOrder(order)

	// Fire and forget: a lost email must never stop the buyer from seeing
	// their confirmation.
	go func(order admin.Order) {
		receipt := o.emails.SendOrderEmails(context.Background(), order)
		if !receipt.Customer || !receipt.Admin {
			log.Warn().Str("order_id", order.ID).
				Bool("customer_sent", receipt.Customer).
				Bool("admin_sent", receipt.Admin).
				Msg("order emails partially delivered")
		}
	}(order)

	basket.ClearCart()

	log.Info().Str("order_id", order.ID).Str("payment_ref", result.Reference).Msg("order placed")
	return order, nil
}

// orderID prefers the payment reference; without one it falls back to a
// millisecond timestamp.
func orderID(paymentRef string) string {
	if paymentRef != "" {
		return paymentRef
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
