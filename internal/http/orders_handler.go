package http

import (
	"context"
	"net/http"

	"github.com/adi-0104/Qkart/internal/domain"
)

// OrderStore is the read side of the order history the handler needs.
type OrderStore interface {
	ListOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error)
}

type OrdersHandler struct {
	store OrderStore
}

func NewOrdersHandler(store OrderStore) *OrdersHandler {
	return &OrdersHandler{store: store}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	orders, err := h.store.ListOrdersByEmail(r.Context(), user.Email)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}
