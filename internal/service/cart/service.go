package cart

import (
	"context"
	"errors"

	"marketplace/internal/domain"
	cartrepo "marketplace/internal/repository/cart"
)

// Service owns the persisted cart. There is exactly one authoritative
// cart representation: the cart_lines table.
type Service struct {
	repo     cartrepo.Repository
	products productGetter
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add puts a product in the user's cart; adding the same product again
// increments the existing line's quantity.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	line, err := s.repo.AddLine(ctx, userID, product.ID, quantity)
	if err != nil {
		return nil, err
	}
	line.Product = product
	return line, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	return s.repo.UpdateQuantity(ctx, userID, lineID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	return s.repo.DeleteLine(ctx, userID, lineID)
}
