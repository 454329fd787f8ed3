package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/catalog"
)

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	ScentNotes  string  `json:"scentNotes"`
}

func toProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		Image:       p.Image,
		ScentNotes:  p.ScentNotes,
	}
}

// CatalogHandler serves the public product catalog out of the admin store.
type CatalogHandler struct {
	store *admin.Store
}

func NewCatalogHandler(store *admin.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

type CatalogResponse struct {
	Loading  bool              `json:"loading"`
	Products []ProductResponse `json:"products"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	respondWithJSON(w, http.StatusOK, CatalogResponse{
		Loading:  h.store.Loading(),
		Products: out,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, ok := h.store.Product(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondWithJSON(w, http.StatusOK, toProductResponse(p))
}
