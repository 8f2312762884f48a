package domain

import "time"

// Order is the durable record of a completed purchase. SessionID holds
// the payment-session reference that produced it and is unique, so a
// replayed finalization resolves to the same order.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	SessionID  string      `json:"-"`
	TotalCents int64       `json:"totalCents"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"lines,omitempty"`
}

// OrderLine is immutable after creation; PriceCents is the unit price
// captured at checkout time, not re-read from the product.
type OrderLine struct {
	ID         string `json:"id"`
	OrderID    string `json:"-"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}
