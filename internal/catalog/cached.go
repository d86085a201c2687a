package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adi-0104/Qkart/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker/v2"
)

// CachedCatalog wraps a catalog with an in-process LRU and a circuit
// breaker. Cart writes resolve a product on every call; the LRU keeps
// the hot part of the catalog off the store, and the breaker fails
// those calls fast when the store is wedged instead of stalling them.
type CachedCatalog struct {
	inner Catalog
	lru   *lru.Cache[string, *domain.Product]
	cb    *gobreaker.CircuitBreaker[*domain.Product]
}

func NewCached(inner Catalog, size int) (*CachedCatalog, error) {
	l, err := lru.New[string, *domain.Product](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create product cache: %w", err)
	}

	cb := gobreaker.NewCircuitBreaker[*domain.Product](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 3,
		Timeout:     10 * time.Second,
		// A miss is an answer, not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound)
		},
	})

	return &CachedCatalog{inner: inner, lru: l, cb: cb}, nil
}

func (c *CachedCatalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	key := domain.NormalizeProductID(id)
	if p, ok := c.lru.Get(key); ok {
		return p, nil
	}

	p, err := c.cb.Execute(func() (*domain.Product, error) {
		return c.inner.FindByID(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	c.lru.Add(key, p)
	return p, nil
}
