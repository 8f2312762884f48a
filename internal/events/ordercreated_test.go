package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain"
)

func TestBuildOrderCreated(t *testing.T) {
	o := &domain.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalCents: 2498,
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Lines: []domain.OrderLine{
			{ProductID: "p1", Quantity: 2, PriceCents: 999},
			{ProductID: "p2", Quantity: 1, PriceCents: 500},
		},
	}

	ev := BuildOrderCreated(o)

	require.NoError(t, ev.Validate(OrderCreatedName, OrderCreatedVersion))
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "order-1", ev.PartitionKey)
	assert.Equal(t, "marketplace-api", ev.Producer)
	assert.Equal(t, int64(2498), ev.Payload.TotalCents)
	require.Len(t, ev.Payload.Items, 2)
	assert.Equal(t, OrderCreatedItem{ProductID: "p1", Quantity: 2, PriceCents: 999}, ev.Payload.Items[0])
}

func TestBuildOrderCreated_UniqueEventIDs(t *testing.T) {
	o := &domain.Order{ID: "order-1", UserID: "user-1"}

	first := BuildOrderCreated(o)
	second := BuildOrderCreated(o)

	assert.NotEqual(t, first.EventID, second.EventID)
}

func TestOrderCreatedEnvelope_JSONRoundTrip(t *testing.T) {
	ev := BuildOrderCreated(&domain.Order{
		ID:         "order-9",
		UserID:     "user-9",
		TotalCents: 500,
		Lines:      []domain.OrderLine{{ProductID: "p9", Quantity: 1, PriceCents: 500}},
	})

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded OrderCreatedEnvelope
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.NoError(t, decoded.Validate(OrderCreatedName, OrderCreatedVersion))
	assert.Equal(t, ev.Payload, decoded.Payload)
}

func TestEnvelope_ValidateRejectsWrongIdentity(t *testing.T) {
	ev := BuildOrderCreated(&domain.Order{ID: "order-1"})

	assert.Error(t, ev.Validate("OrderCompleted", OrderCreatedVersion))
	assert.Error(t, ev.Validate(OrderCreatedName, 2))

	ev.PartitionKey = ""
	assert.Error(t, ev.Validate(OrderCreatedName, OrderCreatedVersion))
}
