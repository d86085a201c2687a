package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adi-0104/Qkart/internal/domain"
	"github.com/adi-0104/Qkart/internal/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Consumer turns checkout-completed events into immutable order rows.
// The unique checkout_id column makes redelivery harmless.
type Consumer struct {
	repo   OrderRepository
	reader *kafka.Reader
}

func NewConsumer(repo OrderRepository, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    events.Topic,
		GroupID:  "order-history",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{repo, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Error().Err(err).Msg("error closing kafka reader")
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error().Err(err).Msg("error reading checkout event")
		return
	}

	var event events.CheckoutCompleted
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Error().Err(err).Msg("error parsing checkout event")
		return
	}

	if err := c.storeOrder(ctx, event); err != nil {
		log.Error().Err(err).Str("checkout_id", event.CheckoutID).Msg("failed to record order")
	}
}

func (c *Consumer) storeOrder(ctx context.Context, event events.CheckoutCompleted) error {
	order, err := orderFromEvent(event)
	if err != nil {
		return err
	}

	if err := c.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateCheckout) {
			log.Info().Str("checkout_id", event.CheckoutID).Msg("order already recorded, skipping")
			return nil
		}
		return err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("checkout_id", order.CheckoutID.String()).
		Str("email", order.Email).
		Msg("order recorded")
	return nil
}

func orderFromEvent(event events.CheckoutCompleted) (*domain.Order, error) {
	checkoutID, err := uuid.Parse(event.CheckoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid checkout_id %q: %w", event.CheckoutID, err)
	}

	currency := event.Currency
	if currency == "" {
		currency = "USD"
	}

	return &domain.Order{
		ID:          uuid.New(),
		CheckoutID:  checkoutID,
		Email:       event.Email,
		TotalAmount: event.TotalAmount,
		Currency:    currency,
		Status:      domain.OrderStatusConfirmed,
		Items:       event.Items,
	}, nil
}
