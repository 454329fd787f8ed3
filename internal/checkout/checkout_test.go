package checkout_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/catalog"
	"github.com/marishandmade/storefront/internal/checkout"
	"github.com/marishandmade/storefront/internal/email"
	"github.com/marishandmade/storefront/internal/payment"
)

// fakeProvider scripts the payment flow per test.
type fakeProvider struct {
	createIntentFunc func(ctx context.Context, amount decimal.Decimal, currency string, meta payment.Metadata) (payment.Intent, error)
	confirmFunc      func(ctx context.Context, intent payment.Intent, card payment.Card) (payment.Result, error)
}

func (f *fakeProvider) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, meta payment.Metadata) (payment.Intent, error) {
	if f.createIntentFunc != nil {
		return f.createIntentFunc(ctx, amount, currency, meta)
	}
	return payment.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
}

func (f *fakeProvider) Confirm(ctx context.Context, intent payment.Intent, card payment.Card) (payment.Result, error) {
	if f.confirmFunc != nil {
		return f.confirmFunc(ctx, intent, card)
	}
	return payment.Result{Reference: intent.ID}, nil
}

// fakeSender records the orders it was asked to email about.
type fakeSender struct {
	mu      sync.Mutex
	orders  []admin.Order
	receipt email.Receipt
}

func newFakeSender() *fakeSender {
	return &fakeSender{receipt: email.Receipt{Customer: true, Admin: true}}
}

func (f *fakeSender) SendOrderEmails(ctx context.Context, o admin.Order) email.Receipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, o)
	return f.receipt
}

func (f *fakeSender) sent() []admin.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]admin.Order(nil), f.orders...)
}

func testProduct(id, name, price string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func testStore() *admin.Store {
	return admin.NewStore([]catalog.Product{testProduct("1", "Blossom Box", "48.00")}, admin.DefaultSiteConfig(), nil, nil)
}

func testDetails() checkout.ShippingDetails {
	return checkout.ShippingDetails{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.com",
		Address:   "1 High Street",
		City:      "London",
		Postcode:  "N1 1AA",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	store := testStore()
	emails := newFakeSender()

	var charged decimal.Decimal
	payments := &fakeProvider{
		createIntentFunc: func(ctx context.Context, amount decimal.Decimal, currency string, meta payment.Metadata) (payment.Intent, error) {
			charged = amount
			assert.Equal(t, "gbp", currency)
			assert.Equal(t, "Ana Lopez", meta.CustomerName)
			return payment.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
		},
	}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	o := checkout.New(store, payments, emails)
	order, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{Number: "4242424242424242"})
	require.NoError(t, err)

	// 96.00 of goods plus the 4.99 flat shipping.
	assert.True(t, charged.Equal(decimal.RequireFromString("100.99")), "charged %s", charged)

	assert.Equal(t, "pi_test", order.ID, "payment reference becomes the order id")
	assert.Equal(t, "pi_test", order.PaymentRef)
	assert.Equal(t, admin.StatusPending, order.Status)
	assert.Equal(t, "Ana Lopez", order.CustomerName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("100.99")))

	// Recorded in the store, newest first.
	orders := store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "pi_test", orders[0].ID)

	// The basket is cleared on success.
	assert.Empty(t, basket.Items())

	// Emails fire on a detached goroutine.
	assert.Eventually(t, func() bool {
		return len(emails.sent()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPlaceOrder_GiftAddsFeeToCharge(t *testing.T) {
	var charged decimal.Decimal
	payments := &fakeProvider{
		createIntentFunc: func(ctx context.Context, amount decimal.Decimal, currency string, meta payment.Metadata) (payment.Intent, error) {
			charged = amount
			return payment.Intent{ID: "pi_test"}, nil
		},
	}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))
	basket.ToggleGift()
	basket.SetGiftNote("Happy birthday!")

	o := checkout.New(testStore(), payments, newFakeSender())
	order, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})
	require.NoError(t, err)

	// 48.00 + 5.00 gift wrap + 4.99 shipping.
	assert.True(t, charged.Equal(decimal.RequireFromString("57.99")), "charged %s", charged)
	assert.True(t, order.IsGift)
	assert.Equal(t, "Happy birthday!", order.GiftNote)
}

func TestPlaceOrder_EmptyBasket(t *testing.T) {
	o := checkout.New(testStore(), &fakeProvider{}, newFakeSender())

	_, err := o.PlaceOrder(context.Background(), cart.NewStore(), testDetails(), payment.Card{})
	assert.ErrorIs(t, err, checkout.ErrEmptyBasket)
}

func TestPlaceOrder_DeclinePreservesBasket(t *testing.T) {
	store := testStore()
	emails := newFakeSender()
	payments := &fakeProvider{
		confirmFunc: func(ctx context.Context, intent payment.Intent, card payment.Card) (payment.Result, error) {
			return payment.Result{}, &payment.DeclinedError{Message: "Your card was declined."}
		},
	}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	o := checkout.New(store, payments, emails)
	_, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})

	require.Error(t, err)
	assert.True(t, payment.IsDeclined(err))
	assert.Equal(t, "Your card was declined.", err.Error(), "the processor message passes through verbatim")

	assert.Len(t, basket.Items(), 1, "a failed payment must leave the basket for a retry")
	assert.Empty(t, store.Orders(), "nothing is recorded on failure")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, emails.sent(), "no emails on failure")
}

func TestPlaceOrder_IntentFailureBlocksCheckout(t *testing.T) {
	payments := &fakeProvider{
		createIntentFunc: func(ctx context.Context, amount decimal.Decimal, currency string, meta payment.Metadata) (payment.Intent, error) {
			return payment.Intent{}, errors.New("payment service unavailable")
		},
	}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	o := checkout.New(testStore(), payments, newFakeSender())
	_, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})

	require.Error(t, err)
	assert.Len(t, basket.Items(), 1)
}

func TestPlaceOrder_EmailFailureIsNotFatal(t *testing.T) {
	emails := newFakeSender()
	emails.receipt = email.Receipt{Customer: false, Admin: false}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	store := testStore()
	o := checkout.New(store, &fakeProvider{}, emails)
	_, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})

	require.NoError(t, err, "lost emails never fail the checkout")
	assert.Len(t, store.Orders(), 1)
	assert.Empty(t, basket.Items())
}

func TestPlaceOrder_TimestampFallbackID(t *testing.T) {
	payments := &fakeProvider{
		confirmFunc: func(ctx context.Context, intent payment.Intent, card payment.Card) (payment.Result, error) {
			return payment.Result{}, nil
		},
	}

	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	o := checkout.New(testStore(), payments, newFakeSender())
	order, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID, "without a payment reference the id falls back to a timestamp")
	assert.Empty(t, order.PaymentRef)
}

func TestPlaceOrder_OrderSnapshotSurvivesBasketClear(t *testing.T) {
	basket := cart.NewStore()
	basket.AddItem(testProduct("1", "Blossom Box", "48.00"))

	store := testStore()
	o := checkout.New(store, &fakeProvider{}, newFakeSender())
	order, err := o.PlaceOrder(context.Background(), basket, testDetails(), payment.Card{})
	require.NoError(t, err)

	require.Empty(t, basket.Items())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Blossom Box", order.Items[0].Name)
}
