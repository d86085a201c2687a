package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adi-0104/Qkart/internal/apperr"
	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/adi-0104/Qkart/internal/events"
	"github.com/adi-0104/Qkart/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Checkout converts the cart's contents into a wallet debit and
// empties the cart. Preconditions run in order, first failure wins,
// and nothing is mutated before all of them pass:
//
//  1. the cart exists
//  2. the cart has at least one line
//  3. the wallet covers the total
//  4. a non-default shipping address is set
//
// The cart clear and the wallet debit land in one store transaction,
// keyed on the cart version read here. A concurrent cart write between
// the read and the commit aborts the transaction; the loop re-reads
// and re-runs the preconditions against the new contents.
func (s *CartService) Checkout(ctx context.Context, user *domain.UserAccount) error {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		// Read the store, not the cache: the debit must be computed
		// from the authoritative document.
		cart, err := s.carts.GetCart(ctx, user.Email)
		if errors.Is(err, repository.ErrCartNotFound) {
			return apperr.NotFound("User does not have a cart")
		}
		if err != nil {
			return err
		}

		if len(cart.Items) == 0 {
			return apperr.InvalidRequest("No products in cart")
		}

		total := cart.Total()
		if user.WalletMoney < total {
			return apperr.InvalidRequest("Insufficient Balance")
		}

		if !user.HasNonDefaultAddress() {
			return apperr.InvalidRequest("No address set")
		}

		if err := s.checkout.CompleteCheckout(ctx, user.Email, cart.Version, total); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return apperr.InvalidRequest("Insufficient Balance")
			}
			return fmt.Errorf("complete checkout: %w", err)
		}

		// Keep the in-memory record consistent with the committed debit.
		user.WalletMoney -= total

		s.invalidate(user.Email)
		s.publishCheckoutCompleted(ctx, user.Email, cart, total)

		return nil
	}

	return fmt.Errorf("checkout: %w", repository.ErrVersionConflict)
}

// publishCheckoutCompleted is fire-and-forget: the checkout is already
// committed, so a publish failure is logged and the order row is
// recovered by a later replay, never by failing the request.
func (s *CartService) publishCheckoutCompleted(ctx context.Context, email string, cart *domain.Cart, total float64) {
	if s.events == nil {
		return
	}

	items := make([]domain.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitCost:    line.Product.Cost,
		}
	}

	event := events.CheckoutCompleted{
		CheckoutID:  uuid.NewString(),
		Email:       email,
		Items:       items,
		TotalAmount: total,
		Currency:    "USD",
		CompletedAt: time.Now(),
	}

	if err := s.events.PublishCheckoutCompleted(ctx, event); err != nil {
		log.Error().Err(err).Str("email", email).Str("checkout_id", event.CheckoutID).
			Msg("failed to publish checkout event")
	}
}
