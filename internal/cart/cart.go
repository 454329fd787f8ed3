package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/catalog"
)

// GiftFee is the flat surcharge applied when the gift-wrap option is selected.
var GiftFee = decimal.RequireFromString("5.00")

// Item is a line item: a product plus the quantity selected of it.
// Quantity is always >= 1; removal is a separate explicit action.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Store holds one in-progress basket. It is safe for concurrent use; every
// mutation applies atomically under the lock.
//
// Basket state is in-memory only and does not survive a restart. That is
// deliberate: an abandoned cart should not resurrect indefinitely.
type Store struct {
	mu       sync.Mutex
	items    []Item
	isOpen   bool
	isGift   bool
	giftNote string
}

func NewStore() *Store {
	return &Store{}
}

// AddItem puts a product in the basket. If a line for this product id already
// exists its quantity is incremented by 1, otherwise a new line with quantity
// 1 is appended. Adding always opens the basket.
func (s *Store) AddItem(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			s.isOpen = true
			return
		}
	}
	s.items = append(s.items, Item{Product: p, Quantity: 1})
	s.isOpen = true
}

// RemoveItem deletes the line with the matching product id. Removing an id
// that is not in the basket is a no-op, not an error.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// UpdateQuantity adjusts the quantity of the matching line by delta, clamped
// to a floor of 1. Decrementing can therefore never empty a line; only
// RemoveItem removes. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			q := s.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			s.items[i].Quantity = q
			return
		}
	}
}

// ToggleCart flips the basket visibility flag.
func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

// ToggleGift flips the gift-wrap flag.
func (s *Store) ToggleGift() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isGift = !s.isGift
}

// SetGiftNote replaces the gift note verbatim. Length bounding is a transport
// concern; the store accepts any note it is given.
func (s *Store) SetGiftNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.giftNote = note
}

// ClearCart empties the basket and resets the gift flag and note. Called
// after an order is successfully placed.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.isGift = false
	s.giftNote = ""
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

func (s *Store) IsGift() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isGift
}

func (s *Store) GiftNote() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.giftNote
}

// Subtotal is the exact sum of price x quantity over the current lines. It is
// recomputed on every call so it always reflects the latest mutation.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Store) subtotalLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Total is the subtotal plus the gift fee when gift wrapping is selected.
// Shipping is layered on at checkout, not here: this is the basket total,
// not the order total.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isGift {
		return s.subtotalLocked().Add(GiftFee)
	}
	return s.subtotalLocked()
}
