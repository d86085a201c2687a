// Package catalog is the read-only source of truth for product
// existence and cost. The cart core only ever resolves single ids;
// listing exists for the storefront browse endpoints.
package catalog

import (
	"context"
	"errors"

	"github.com/adi-0104/Qkart/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog resolves a product id to its current snapshot.
type Catalog interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}
