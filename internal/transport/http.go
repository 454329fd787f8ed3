package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/cart"
	"github.com/marishandmade/storefront/internal/checkout"
	"github.com/marishandmade/storefront/internal/handler"
)

// NewRouter assembles the storefront and admin APIs.
func NewRouter(store *admin.Store, carts *cart.Registry, orchestrator *checkout.Orchestrator, auth *handler.Auth) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	catalogHandler := handler.NewCatalogHandler(store)
	cartHandler := handler.NewCartHandler(carts, store)
	checkoutHandler := handler.NewCheckoutHandler(orchestrator, cartHandler)
	adminHandler := handler.NewAdminHandler(store, auth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/site-config", adminHandler.GetSiteConfig)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Patch("/items/{id}", cartHandler.UpdateQuantity)
			r.Post("/toggle", cartHandler.ToggleCart)
			r.Post("/gift", cartHandler.ToggleGift)
			r.Put("/gift-note", cartHandler.SetGiftNote)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)
				r.Post("/products", adminHandler.CreateProduct)
				r.Patch("/products/{id}", adminHandler.UpdateProduct)
				r.Delete("/products/{id}", adminHandler.DeleteProduct)
				r.Get("/orders", adminHandler.ListOrders)
				r.Patch("/orders/{id}/status", adminHandler.UpdateOrderStatus)
				r.Patch("/site-config", adminHandler.UpdateSiteConfig)
			})
		})
	})

	return r
}
