package checkout

import (
	"context"

	"marketplace/internal/domain"
)

// Repository stores pending checkouts keyed by payment-session id.
// Consumption happens inside the order repository's finalize transaction
// so an order and its snapshot consumption commit together.
type Repository interface {
	Create(ctx context.Context, pc domain.PendingCheckout) error
	Get(ctx context.Context, sessionID string) (*domain.PendingCheckout, error)
}
