package events

import (
	"time"

	"github.com/google/uuid"

	"marketplace/internal/domain"
)

const (
	OrderCreatedName    = "OrderCreated"
	OrderCreatedVersion = 1
)

// OrderCreatedItem mirrors the order-line contract shared with
// downstream consumers.
type OrderCreatedItem struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// OrderCreatedPayload is the v1 payload schema.
type OrderCreatedPayload struct {
	OrderID    string             `json:"orderId"`
	UserID     string             `json:"userId"`
	Items      []OrderCreatedItem `json:"items"`
	TotalCents int64              `json:"totalCents"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// OrderCreatedEnvelope is the enveloped event structure.
type OrderCreatedEnvelope = Envelope[OrderCreatedPayload]

// BuildOrderCreated wraps a finalized order in an event envelope.
func BuildOrderCreated(o *domain.Order) OrderCreatedEnvelope {
	items := make([]OrderCreatedItem, 0, len(o.Lines))
	for _, line := range o.Lines {
		items = append(items, OrderCreatedItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
		})
	}

	return OrderCreatedEnvelope{
		EventName:    OrderCreatedName,
		EventVersion: OrderCreatedVersion,
		EventID:      uuid.NewString(),
		Producer:     "marketplace-api",
		PartitionKey: o.ID,
		OccurredAt:   time.Now().UTC(),
		Payload: OrderCreatedPayload{
			OrderID:    o.ID,
			UserID:     o.UserID,
			Items:      items,
			TotalCents: o.TotalCents,
			CreatedAt:  o.CreatedAt,
		},
	}
}
