package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the public surface. The cart and orders routes
// run behind the user loader; product browsing is anonymous.
func NewRouter(
	cartHandler *CartHandler,
	productsHandler *ProductsHandler,
	ordersHandler *OrdersHandler,
	userLoader func(http.Handler) http.Handler,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productsHandler.ListProducts)
			r.Get("/{id}", productsHandler.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(userLoader)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/", cartHandler.AddProduct)
				r.Put("/", cartHandler.UpdateProduct)
				r.Delete("/", cartHandler.DeleteProduct)
				r.Post("/checkout", cartHandler.Checkout)
			})

			r.Get("/orders", ordersHandler.ListOrders)
		})
	})

	return r
}
