package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/catalog"
)

// AdminHandler exposes the dashboard operations: product CRUD, order status
// management, and site imagery.
type AdminHandler struct {
	store    *admin.Store
	auth     *Auth
	validate *validator.Validate
}

func NewAdminHandler(store *admin.Store, auth *Auth) *AdminHandler {
	return &AdminHandler{
		store:    store,
		auth:     auth,
		validate: validator.New(),
	}
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	if !h.auth.Check(req.Password) {
		respondWithError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Image       string  `json:"image"`
	ScentNotes  string  `json:"scentNotes"`
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate product id")
		respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	p := catalog.Product{
		ID:          id.String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Category:    req.Category,
		Image:       req.Image,
		ScentNotes:  req.ScentNotes,
	}
	h.store.AddProduct(p)

	respondWithJSON(w, http.StatusCreated, toProductResponse(p))
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	ScentNotes  *string  `json:"scentNotes,omitempty"`
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	patch := admin.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		ScentNotes:  req.ScentNotes,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		patch.Price = &price
	}

	h.store.UpdateProduct(id, patch)

	p, ok := h.store.Product(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondWithJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveProduct(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.store.Orders()
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"orders": out})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	if err := h.store.UpdateOrderStatus(id, admin.OrderStatus(req.Status)); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type UpdateSiteConfigRequest struct {
	HeroBackground    *string `json:"heroBackground,omitempty"`
	HeroForeground    *string `json:"heroForeground,omitempty"`
	StoryImage        *string `json:"storyImage,omitempty"`
	AboutImage        *string `json:"aboutImage,omitempty"`
	ReviewsBackground *string `json:"reviewsBackground,omitempty"`
	NavbarBackground  *string `json:"navbarBackground,omitempty"`
}

func (h *AdminHandler) UpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var req UpdateSiteConfigRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	h.store.UpdateSiteConfig(admin.SiteConfigPatch{
		HeroBackground:    req.HeroBackground,
		HeroForeground:    req.HeroForeground,
		StoryImage:        req.StoryImage,
		AboutImage:        req.AboutImage,
		ReviewsBackground: req.ReviewsBackground,
		NavbarBackground:  req.NavbarBackground,
	})
	respondWithJSON(w, http.StatusOK, h.store.SiteConfig())
}

func (h *AdminHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.SiteConfig())
}
