package catalog

import "github.com/shopspring/decimal"

// Product is a catalog entry. IDs are unique within the catalog. Products are
// created and mutated only by admin actions (or a remote load); the cart and
// checkout flows read them but never change them.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	ScentNotes  string          `json:"scentNotes"`
}
