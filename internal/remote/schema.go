// Package remote implements the remote persistence collaborator mirrored to
// by the admin store: a Supabase-style REST client and a direct Postgres
// variant, both speaking the same snake_case wire schema.
package remote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/catalog"
)

// ProductRecord is a row of the remote products table.
type ProductRecord struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	ScentNotes  string     `json:"scent_notes"`
	BurnTime    string     `json:"burn_time"`
	Category    string     `json:"category"`
	Featured    bool       `json:"featured"`
	InStock     bool       `json:"in_stock"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// OrderItemRecord is one snapshotted line inside a remote order row.
type OrderItemRecord struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// OrderRecord is a row of the remote orders table.
type OrderRecord struct {
	ID               string            `json:"id,omitempty"`
	CustomerName     string            `json:"customer_name"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerPhone    string            `json:"customer_phone,omitempty"`
	ShippingAddress  string            `json:"shipping_address"`
	ShippingCity     string            `json:"shipping_city"`
	ShippingPostcode string            `json:"shipping_postcode"`
	Items            []OrderItemRecord `json:"items"`
	Subtotal         float64           `json:"subtotal"`
	Shipping         float64           `json:"shipping"`
	Total            float64           `json:"total"`
	IsGift           bool              `json:"is_gift"`
	GiftMessage      string            `json:"gift_message,omitempty"`
	Status           string            `json:"status"`
	StripePaymentID  string            `json:"stripe_payment_id,omitempty"`
	CreatedAt        *time.Time        `json:"created_at,omitempty"`
}

func productToRecord(p catalog.Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
		Description: p.Description,
		ScentNotes:  p.ScentNotes,
		Category:    p.Category,
		InStock:     true,
	}
}

func productFromRecord(r ProductRecord) catalog.Product {
	return catalog.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.NewFromFloat(r.Price),
		Category:    r.Category,
		Image:       r.Image,
		ScentNotes:  r.ScentNotes,
	}
}

// orderToRecord maps a local order to the remote shape: fields are renamed,
// the item snapshot is restructured, and the subtotal/shipping split is
// recovered from the recorded total (gift fee excluded from shipping).
func orderToRecord(o admin.Order) OrderRecord {
	items := make([]OrderItemRecord, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemRecord{
			ProductID:   it.ID,
			ProductName: it.Name,
			Price:       it.Price.InexactFloat64(),
			Quantity:    it.Quantity,
		}
	}

	subtotal := o.Subtotal()
	shipping := o.Total.Sub(subtotal)
	if o.IsGift {
		shipping = shipping.Sub(cart.GiftFee)
	}

	created := o.Date
	return OrderRecord{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.Email,
		ShippingAddress:  o.Address,
		ShippingCity:     o.City,
		ShippingPostcode: o.Postcode,
		Items:            items,
		Subtotal:         subtotal.InexactFloat64(),
		Shipping:         shipping.InexactFloat64(),
		Total:            o.Total.InexactFloat64(),
		IsGift:           o.IsGift,
		GiftMessage:      o.GiftNote,
		Status:           o.Status.String(),
		StripePaymentID:  o.PaymentRef,
		CreatedAt:        &created,
	}
}

func orderFromRecord(r OrderRecord) admin.Order {
	items := make([]cart.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = cart.Item{
			Product: catalog.Product{
				ID:    it.ProductID,
				Name:  it.ProductName,
				Price: decimal.NewFromFloat(it.Price),
			},
			Quantity: it.Quantity,
		}
	}

	var date time.Time
	if r.CreatedAt != nil {
		date = *r.CreatedAt
	}

	return admin.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Email:        r.CustomerEmail,
		Address:      r.ShippingAddress,
		City:         r.ShippingCity,
		Postcode:     r.ShippingPostcode,
		Items:        items,
		Total:        decimal.NewFromFloat(r.Total),
		Date:         date,
		Status:       statusFromRemote(r.Status),
		IsGift:       r.IsGift,
		GiftNote:     r.GiftMessage,
		PaymentRef:   r.StripePaymentID,
	}
}

// statusFromRemote maps the remote status vocabulary onto the local one. The
// remote schema additionally knows "paid", which locally is still a pending
// fulfilment.
func statusFromRemote(s string) admin.OrderStatus {
	switch admin.OrderStatus(s) {
	case admin.StatusPending, admin.StatusShipped, admin.StatusDelivered, admin.StatusCancelled:
		return admin.OrderStatus(s)
	default:
		return admin.StatusPending
	}
}
