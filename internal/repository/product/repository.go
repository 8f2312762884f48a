package product

import (
	"context"

	"marketplace/internal/domain"
)

// OwnerStats summarizes a seller's catalog for the dashboard.
type OwnerStats struct {
	TotalProducts int
	LowStock      int
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, ownerID, id string) error
	StatsByOwner(ctx context.Context, ownerID string, lowStockBelow int) (OwnerStats, error)
}
