package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
)

const sessionCookie = "cart_session"

type CartItemResponse struct {
	ProductResponse
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	IsOpen   bool               `json:"isOpen"`
	IsGift   bool               `json:"isGift"`
	GiftNote string             `json:"giftNote"`
	Subtotal float64            `json:"subtotal"`
	Total    float64            `json:"total"`
}

// CartHandler exposes one basket per shopper session, keyed by cookie.
type CartHandler struct {
	registry *cart.Registry
	store    *admin.Store
	validate *validator.Validate
}

func NewCartHandler(registry *cart.Registry, store *admin.Store) *CartHandler {
	return &CartHandler{
		registry: registry,
		store:    store,
		validate: validator.New(),
	}
}

// basket resolves the session basket, creating a session (and cookie) on
// first contact. A nil return means the response has been written.
func (h *CartHandler) basket(w http.ResponseWriter, r *http.Request) *cart.Store {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if b := h.registry.Get(c.Value); b != nil {
			return b
		}
	}

	id, b, err := h.registry.NewSession()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create cart session")
		respondWithError(w, http.StatusInternalServerError, "Failed to create cart session")
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return b
}

func (h *CartHandler) respondCart(w http.ResponseWriter, b *cart.Store) {
	items := b.Items()
	out := make([]CartItemResponse, len(items))
	for i, it := range items {
		out[i] = CartItemResponse{
			ProductResponse: toProductResponse(it.Product),
			Quantity:        it.Quantity,
		}
	}
	respondWithJSON(w, http.StatusOK, CartResponse{
		Items:    out,
		IsOpen:   b.IsOpen(),
		IsGift:   b.IsGift(),
		GiftNote: b.GiftNote(),
		Subtotal: b.Subtotal().InexactFloat64(),
		Total:    b.Total().InexactFloat64(),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	if b := h.basket(w, r); b != nil {
		h.respondCart(w, b)
	}
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}

	var req AddItemRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	p, ok := h.store.Product(req.ProductID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	b.AddItem(p)
	h.respondCart(w, b)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}
	b.RemoveItem(chi.URLParam(r, "id"))
	h.respondCart(w, b)
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}

	var req UpdateQuantityRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	b.UpdateQuantity(chi.URLParam(r, "id"), req.Delta)
	h.respondCart(w, b)
}

func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}
	b.ToggleCart()
	h.respondCart(w, b)
}

func (h *CartHandler) ToggleGift(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}
	b.ToggleGift()
	h.respondCart(w, b)
}

type GiftNoteRequest struct {
	// The note is advisory-bounded to 150 characters at this layer; the
	// basket itself stores whatever it is handed.
	Note string `json:"note" validate:"max=150"`
}

func (h *CartHandler) SetGiftNote(w http.ResponseWriter, r *http.Request) {
	b := h.basket(w, r)
	if b == nil {
		return
	}

	var req GiftNoteRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	b.SetGiftNote(req.Note)
	h.respondCart(w, b)
}
