package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/adi-0104/Qkart/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCheckoutStore struct {
	client *mongo.Client
	carts  *mongo.Collection
	users  *mongo.Collection
}

func NewMongoCheckoutStore(db *mongo.Database) CheckoutStore {
	return &mongoCheckoutStore{
		client: db.Client(),
		carts:  db.Collection("carts"),
		users:  db.Collection("users"),
	}
}

// CompleteCheckout empties the cart and debits the wallet inside one
// driver session transaction, so a crash can never clear a cart
// without charging for it or vice versa. Requires the server to run as
// a replica set.
//
// The cart clear matches on the version the caller read, and the debit
// matches only a wallet that still covers the total, so a cart or
// balance that moved after the caller's read aborts the transaction
// instead of committing stale state.
func (m *mongoCheckoutStore) CompleteCheckout(ctx context.Context, email string, version int64, total float64) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		cartUpdate := bson.M{
			"$set": bson.M{
				"items":      []domain.CartItem{},
				"updated_at": now,
			},
			"$inc": bson.M{"version": 1},
		}
		cartFilter := bson.M{"email": email, "version": version}
		res, err := m.carts.UpdateOne(sc, cartFilter, cartUpdate)
		if err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		if res.MatchedCount == 0 {
			// Deleted cart and stale version look the same here; the
			// caller re-reads and either retries or reports not-found.
			return nil, ErrVersionConflict
		}

		userUpdate := bson.M{"$inc": bson.M{"walletMoney": -total}}
		userFilter := bson.M{"email": email, "walletMoney": bson.M{"$gte": total}}
		res, err = m.users.UpdateOne(sc, userFilter, userUpdate)
		if err != nil {
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
		if res.MatchedCount == 0 {
			count, err := m.users.CountDocuments(sc, bson.M{"email": email})
			if err != nil {
				return nil, fmt.Errorf("failed to look up user: %w", err)
			}
			if count == 0 {
				return nil, ErrUserNotFound
			}
			return nil, ErrInsufficientFunds
		}

		return nil, nil
	})

	return err
}
