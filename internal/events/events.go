// Package events carries the checkout-completed event from the cart
// core to downstream consumers (order history).
package events

import (
	"context"
	"time"

	"github.com/adi-0104/Qkart/internal/domain"
)

// Topic is the Kafka topic checkout-completed events travel on.
const Topic = "checkout-completed"

type CheckoutCompleted struct {
	CheckoutID  string             `json:"checkout_id"`
	Email       string             `json:"email"`
	Items       []domain.OrderItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	CompletedAt time.Time          `json:"completed_at"`
}

// Publisher is consumed by the cart service; the Kafka writer is one
// implementation.
type Publisher interface {
	PublishCheckoutCompleted(ctx context.Context, event CheckoutCompleted) error
}
