package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/checkout"
	"github.com/marishandmade/storefront/internal/payment"
)

// CheckoutHandler runs the checkout flow for the session basket.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	carts        *CartHandler
	validate     *validator.Validate
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator, carts *CartHandler) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		carts:        carts,
		validate:     validator.New(),
	}
}

type CardRequest struct {
	Number   string `json:"number" validate:"required"`
	ExpMonth int    `json:"expMonth" validate:"required,min=1,max=12"`
	ExpYear  int    `json:"expYear" validate:"required"`
	CVC      string `json:"cvc" validate:"required"`
}

type CheckoutRequest struct {
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Email     string      `json:"email" validate:"required,email"`
	Address   string      `json:"address" validate:"required"`
	City      string      `json:"city" validate:"required"`
	Postcode  string      `json:"postcode" validate:"required"`
	Card      CardRequest `json:"card"`
}

type OrderItemResponse struct {
	ProductResponse
	Quantity int `json:"quantity"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customerName"`
	Email        string              `json:"email"`
	Address      string              `json:"address"`
	City         string              `json:"city"`
	Postcode     string              `json:"postcode"`
	Items        []OrderItemResponse `json:"items"`
	Total        float64             `json:"total"`
	Date         time.Time           `json:"date"`
	Status       string              `json:"status"`
	IsGift       bool                `json:"isGift"`
	GiftNote     string              `json:"giftNote,omitempty"`
}

func toOrderResponse(o admin.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductResponse: toProductResponse(it.Product),
			Quantity:        it.Quantity,
		}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Address:      o.Address,
		City:         o.City,
		Postcode:     o.Postcode,
		Items:        items,
		Total:        o.Total.InexactFloat64(),
		Date:         o.Date,
		Status:       o.Status.String(),
		IsGift:       o.IsGift,
		GiftNote:     o.GiftNote,
	}
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	basket := h.carts.basket(w, r)
	if basket == nil {
		return
	}

	var req CheckoutRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	details := checkout.ShippingDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		Postcode:  req.Postcode,
	}
	card := payment.Card{
		Number:   req.Card.Number,
		ExpMonth: req.Card.ExpMonth,
		ExpYear:  req.Card.ExpYear,
		CVC:      req.Card.CVC,
	}

	order, err := h.orchestrator.PlaceOrder(r.Context(), basket, details, card)
	if err != nil {
		if payment.IsDeclined(err) {
			// The processor's message goes to the buyer verbatim; the basket
			// is untouched so they can retry.
			respondWithError(w, http.StatusPaymentRequired, err.Error())
			return
		}
		log.Error().Err(err).Msg("Checkout failed")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}
