package cart

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/domain"
)

type stubCartRepo struct {
	lines []domain.CartLine
	line  *domain.CartLine
	err   error

	addedProductID string
	addedQuantity  int
}

func (s *stubCartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.lines, s.err
}

func (s *stubCartRepo) AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	s.addedProductID = productID
	s.addedQuantity = quantity
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CartLine{ID: "line-1", UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

func (s *stubCartRepo) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CartLine{ID: lineID, UserID: userID, Quantity: quantity}, nil
}

func (s *stubCartRepo) DeleteLine(ctx context.Context, userID, lineID string) error { return s.err }

func (s *stubCartRepo) DeleteByIDs(ctx context.Context, ids []string) error { return s.err }

type stubProducts struct {
	product *domain.Product
	err     error
}

func (s *stubProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, &stubProducts{product: &domain.Product{ID: "p1", Name: "Mug"}})

	line, err := svc.Add(context.Background(), "user-1", "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.addedQuantity != 1 {
		t.Fatalf("expected quantity 1, got %d", repo.addedQuantity)
	}
	if line.Product == nil || line.Product.ID != "p1" {
		t.Fatalf("expected product attached to line, got %+v", line.Product)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, &stubProducts{err: domain.ErrNotFound})

	if _, err := svc.Add(context.Background(), "user-1", "missing", 2); err == nil {
		t.Fatal("expected error for unknown product")
	}
	if repo.addedProductID != "" {
		t.Fatal("repo should not be touched when the product is unknown")
	}
}

func TestUpdateQuantityRejectsNonPositive(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProducts{})

	if _, err := svc.UpdateQuantity(context.Background(), "user-1", "line-1", 0); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestRemovePropagatesNotFound(t *testing.T) {
	svc := New(&stubCartRepo{err: domain.ErrNotFound}, &stubProducts{})

	err := svc.Remove(context.Background(), "user-1", "line-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
