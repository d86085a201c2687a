package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/adi-0104/Qkart/internal/catalog"
	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ProductStore is the read-only catalog slice the browse endpoints
// need.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
}

type ProductsHandler struct {
	store ProductStore
}

func NewProductsHandler(store ProductStore) *ProductsHandler {
	return &ProductsHandler{store: store}
}

// GET /api/v1/products
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListAll(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product doesn't exist in database")
			return
		}
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
