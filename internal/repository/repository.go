package repository

import (
	"context"
	"errors"

	"github.com/adi-0104/Qkart/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrVersionConflict means the cart changed between read and write.
	// Callers re-read and retry.
	ErrVersionConflict = errors.New("cart was modified concurrently")

	// ErrInsufficientFunds means the wallet no longer covered the total
	// at commit time.
	ErrInsufficientFunds = errors.New("wallet does not cover the total")
)

// CartRepository defines cart persistence as the service consumes it:
// find by owner email, insert, and whole-document compare-and-swap
// replace.
type CartRepository interface {
	GetCart(ctx context.Context, email string) (*domain.Cart, error)
	CreateCart(ctx context.Context, cart *domain.Cart) error
	ReplaceCart(ctx context.Context, cart *domain.Cart) error
}

// UserRepository reads account records for the request middleware.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
}

// CheckoutStore applies the two-document checkout write, emptying the
// cart and debiting the wallet as one atomic unit. The cart clear is a
// compare-and-swap on the version the caller read; a concurrent write
// surfaces as ErrVersionConflict so the caller can re-read and retry.
type CheckoutStore interface {
	CompleteCheckout(ctx context.Context, email string, version int64, total float64) error
}
