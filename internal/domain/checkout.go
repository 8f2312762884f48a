package domain

import "time"

// CheckoutItem is one snapshot entry captured when a checkout session is
// created: the cart line it came from, the product, and the unit price
// at that moment.
type CheckoutItem struct {
	CartLineID string `json:"cartLineId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// PendingCheckout is the durable record of an initiated checkout, keyed
// by the payment-session reference. It is created before the buyer is
// redirected to the processor and consumed exactly once at finalization.
type PendingCheckout struct {
	SessionID  string         `json:"sessionId"`
	UserID     string         `json:"userId"`
	Items      []CheckoutItem `json:"items"`
	ConsumedAt *time.Time     `json:"consumedAt,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// TotalCents sums quantity × unit price over the snapshot. Order totals
// are always recomputed from this, never taken from client input.
func (p PendingCheckout) TotalCents() int64 {
	var total int64
	for _, it := range p.Items {
		total += it.PriceCents * int64(it.Quantity)
	}
	return total
}
