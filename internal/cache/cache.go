package cache

import (
	"context"
	"errors"

	"github.com/adi-0104/Qkart/internal/domain"
)

// CartCache sits in front of the cart collection on the read path.
type CartCache interface {
	Get(ctx context.Context, email string) (*domain.Cart, error)
	Set(ctx context.Context, email string, cart *domain.Cart) error
	Delete(ctx context.Context, email string) error
}

var ErrCacheMiss = errors.New("cache miss")
