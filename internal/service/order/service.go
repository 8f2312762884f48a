package order

import (
	"context"

	"marketplace/internal/domain"
	orderrepo "marketplace/internal/repository/order"
)

type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Delete removes an order and its lines (cascaded). Only the owner can
// delete; anyone else sees ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
