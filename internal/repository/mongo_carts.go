package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adi-0104/Qkart/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, email string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"email": email}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) CreateCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	cart.Version = 1
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	_, err := m.collection.InsertOne(ctx, cart)
	if err != nil {
		// The unique email index rejects a concurrent create; the
		// caller re-reads the winner's document.
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// ReplaceCart saves the whole item list, matching on the version read
// earlier. A zero match means another writer got there first.
func (m *mongoCartRepository) ReplaceCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()

	filter := bson.M{
		"email":   cart.Email,
		"version": cart.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"items":      cart.Items,
			"updated_at": now,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace cart: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Version++
	cart.UpdatedAt = now
	return nil
}

// EnsureIndexes creates the unique owner-email indexes both
// collections rely on. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailUnique := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for _, name := range []string{"carts", "users"} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, emailUnique); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}

	return nil
}
