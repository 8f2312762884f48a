package cart

import (
	"context"

	"marketplace/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	DeleteLine(ctx context.Context, userID, lineID string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}
