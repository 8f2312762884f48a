package order

import (
	"context"

	"marketplace/internal/domain"
)

type Repository interface {
	// CreateFromCheckout commits the order header, its lines, and the
	// pending-checkout consumption in a single transaction. It returns
	// domain.ErrAlreadyExists when the session was already finalized.
	CreateFromCheckout(ctx context.Context, pc domain.PendingCheckout) (*domain.Order, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Order, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Delete(ctx context.Context, userID, id string) error
	SalesTotalBySeller(ctx context.Context, sellerID string) (int64, error)
}
