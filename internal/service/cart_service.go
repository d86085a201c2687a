// Package service holds the cart core: CRUD over a user's cart plus
// checkout. All operations take the already-authenticated UserAccount
// supplied by the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adi-0104/Qkart/internal/apperr"
	"github.com/adi-0104/Qkart/internal/cache"
	"github.com/adi-0104/Qkart/internal/catalog"
	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/adi-0104/Qkart/internal/events"
	"github.com/adi-0104/Qkart/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// maxWriteAttempts bounds the read-modify-write retry loop when a
// concurrent writer bumps the cart version between our read and save.
const maxWriteAttempts = 3

type CartService struct {
	carts    repository.CartRepository
	checkout repository.CheckoutStore
	catalog  catalog.Catalog
	cache    cache.CartCache
	events   events.Publisher
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(
	carts repository.CartRepository,
	checkout repository.CheckoutStore,
	cat catalog.Catalog,
	cartCache cache.CartCache,
	publisher events.Publisher,
) *CartService {
	return &CartService{
		carts:    carts,
		checkout: checkout,
		catalog:  cat,
		cache:    cartCache,
		events:   publisher,
	}
}

// GetCartByUser looks up the cart by the user's email. No side
// effects; fails with 404 when the user never added anything.
func (s *CartService) GetCartByUser(ctx context.Context, user *domain.UserAccount) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(user.Email, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, user.Email)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("email", user.Email).Msg("cart cache get failed")
		}

		cart, err = s.carts.GetCart(ctx, user.Email)
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperr.NotFound("User does not have a cart")
		}
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), user.Email, cart); errSet != nil {
				log.Warn().Err(errSet).Str("email", user.Email).Msg("cart cache set failed")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddProductToCart appends a new line with a catalog snapshot of the
// product. It never bumps the quantity of an existing line; that is
// what UpdateProductInCart is for. The cart is created lazily on the
// first add.
func (s *CartService) AddProductToCart(ctx context.Context, user *domain.UserAccount, productID string, quantity int) (*domain.Cart, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, err := s.carts.GetCart(ctx, user.Email)
		if errors.Is(err, repository.ErrCartNotFound) {
			cart = &domain.Cart{Email: user.Email}
			if errCreate := s.carts.CreateCart(ctx, cart); errCreate != nil {
				if errors.Is(errCreate, repository.ErrVersionConflict) {
					continue // lost the create race, re-read the winner
				}
				log.Error().Err(errCreate).Str("email", user.Email).Msg("cart creation failed")
				return nil, apperr.Internal("Cart creation failed")
			}
		} else if err != nil {
			return nil, err
		}

		if cart.ItemIndex(productID) >= 0 {
			return nil, apperr.InvalidRequest("Product already in cart. Use PUT to update quantity")
		}

		product, err := s.resolveProduct(ctx, productID)
		if err != nil {
			return nil, err
		}

		cart.Items = append(cart.Items, domain.CartItem{Product: *product, Quantity: quantity})

		if err := s.carts.ReplaceCart(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		s.invalidate(user.Email)
		return cart, nil
	}

	return nil, fmt.Errorf("add product to cart: %w", repository.ErrVersionConflict)
}

// UpdateProductInCart replaces the quantity of an existing line in
// place.
func (s *CartService) UpdateProductInCart(ctx context.Context, user *domain.UserAccount, productID string, quantity int) (*domain.Cart, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, err := s.carts.GetCart(ctx, user.Email)
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperr.InvalidRequest("User does not have a cart. Use POST to create cart and add a product")
		}
		if err != nil {
			return nil, err
		}

		if _, err := s.resolveProduct(ctx, productID); err != nil {
			return nil, err
		}

		idx := cart.ItemIndex(productID)
		if idx < 0 {
			return nil, apperr.InvalidRequest("Product not in cart")
		}

		cart.Items[idx].Quantity = quantity

		if err := s.carts.ReplaceCart(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		s.invalidate(user.Email)
		return cart, nil
	}

	return nil, fmt.Errorf("update product in cart: %w", repository.ErrVersionConflict)
}

// DeleteProductFromCart removes a line entirely; no trace is kept.
func (s *CartService) DeleteProductFromCart(ctx context.Context, user *domain.UserAccount, productID string) error {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		cart, err := s.carts.GetCart(ctx, user.Email)
		if errors.Is(err, repository.ErrCartNotFound) {
			return apperr.InvalidRequest("User does not have a cart")
		}
		if err != nil {
			return err
		}

		idx := cart.ItemIndex(productID)
		if idx < 0 {
			return apperr.InvalidRequest("Product not in cart")
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

		if err := s.carts.ReplaceCart(ctx, cart); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return err
		}

		s.invalidate(user.Email)
		return nil
	}

	return fmt.Errorf("delete product from cart: %w", repository.ErrVersionConflict)
}

func (s *CartService) resolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return nil, apperr.InvalidRequest("Product doesn't exist in database")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	return product, nil
}

func (s *CartService) invalidate(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("cart cache invalidate failed")
	}
}
