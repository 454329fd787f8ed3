package admin

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/catalog"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (os OrderStatus) String() string {
	return string(os)
}

// allowedTransitions is the order status state machine. Cancellation is only
// possible before dispatch.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending: {
		StatusShipped:   true,
		StatusCancelled: true,
	},
	StatusShipped: {
		StatusDelivered: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// Order is the immutable record of a completed purchase. Items is a value
// copy of the basket lines at purchase time: later catalog edits must never
// retroactively alter what an order recorded. Only the status field changes
// after creation, and only by admin action.
type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Postcode     string          `json:"postcode"`
	Items        []cart.Item     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
	Status       OrderStatus     `json:"status"`
	IsGift       bool            `json:"isGift"`
	GiftNote     string          `json:"giftNote,omitempty"`
	PaymentRef   string          `json:"paymentRef,omitempty"`
}

// Subtotal is the sum of price x quantity over the recorded lines.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// SiteConfig maps the named image slots to image references (URL or
// data-URI). Every slot always has a value.
type SiteConfig struct {
	HeroBackground    string `json:"heroBackground"`
	HeroForeground    string `json:"heroForeground"`
	StoryImage        string `json:"storyImage"`
	AboutImage        string `json:"aboutImage"`
	ReviewsBackground string `json:"reviewsBackground"`
	NavbarBackground  string `json:"navbarBackground"`
}

func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		HeroBackground:    "/images/backround-image.png",
		HeroForeground:    "/images/collage-prodcut.png",
		StoryImage:        "/images/web-image.png",
		AboutImage:        "https://images.unsplash.com/photo-1544005313-94ddf0286df2?q=80&w=800&auto=format&fit=crop",
		ReviewsBackground: "https://images.unsplash.com/photo-1596436066266-932f995a9478?q=80&w=2000&auto=format&fit=crop",
		NavbarBackground:  "/images/nav-photo.png",
	}
}

// ProductPatch carries the fields of a partial product edit. Nil fields are
// left untouched by the merge.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Image       *string
	ScentNotes  *string
}

func (p ProductPatch) apply(dst *catalog.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.ScentNotes != nil {
		dst.ScentNotes = *p.ScentNotes
	}
}

// SiteConfigPatch carries a partial site config edit.
type SiteConfigPatch struct {
	HeroBackground    *string
	HeroForeground    *string
	StoryImage        *string
	AboutImage        *string
	ReviewsBackground *string
	NavbarBackground  *string
}

func (p SiteConfigPatch) apply(dst *SiteConfig) {
	if p.HeroBackground != nil {
		dst.HeroBackground = *p.HeroBackground
	}
	if p.HeroForeground != nil {
		dst.HeroForeground = *p.HeroForeground
	}
	if p.StoryImage != nil {
		dst.StoryImage = *p.StoryImage
	}
	if p.AboutImage != nil {
		dst.AboutImage = *p.AboutImage
	}
	if p.ReviewsBackground != nil {
		dst.ReviewsBackground = *p.ReviewsBackground
	}
	if p.NavbarBackground != nil {
		dst.NavbarBackground = *p.NavbarBackground
	}
}
