// Package email sends the order confirmation to the customer and the new
// order notification to the admin. Delivery is best-effort: failures are
// logged and never shown to the buyer.
package email

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
)

// Receipt reports delivery of the two emails independently.
type Receipt struct {
	Customer bool
	Admin    bool
}

// Sender dispatches both order emails for a completed order.
type Sender interface {
	SendOrderEmails(ctx context.Context, o admin.Order) Receipt
}

// LogSender is the no-op sender used when no email service is configured: it
// only logs what would have been sent.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) SendOrderEmails(ctx context.Context, o admin.Order) Receipt {
	log.Info().Str("order_id", o.ID).Str("email", o.Email).Msg("[email] order confirmation sent to customer")
	log.Info().Str("order_id", o.ID).Msg("[email] new order notification sent to admin")
	return Receipt{Customer: true, Admin: true}
}

// formatOrderItems renders the line items for the email body.
func formatOrderItems(o admin.Order) string {
	lines := make([]string, len(o.Items))
	for i, it := range o.Items {
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines[i] = fmt.Sprintf("• %s x%d - £%s", it.Name, it.Quantity, lineTotal.StringFixed(2))
	}
	return strings.Join(lines, "\n")
}

// formatGiftSection renders the gift block, or nothing for non-gift orders.
func formatGiftSection(o admin.Order) string {
	if !o.IsGift {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nGIFT ORDER\n")
	b.WriteString("Gift Wrapping: £" + cart.GiftFee.StringFixed(2) + "\n")
	if o.GiftNote != "" {
		b.WriteString(fmt.Sprintf("Gift Message: %q\n", o.GiftNote))
	}
	return b.String()
}

// sendBoth dispatches the two sends concurrently and reports each outcome.
func sendBoth(customer, adminSend func() error) Receipt {
	var r Receipt
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.Customer = customer() == nil
	}()
	go func() {
		defer wg.Done()
		r.Admin = adminSend() == nil
	}()
	wg.Wait()
	return r
}
