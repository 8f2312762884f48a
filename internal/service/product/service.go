package product

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain"
	productrepo "marketplace/internal/repository/product"
)

// lowStockBelow is the dashboard threshold under which a product counts
// as running low.
const lowStockBelow = 5

type Service struct {
	repo  productrepo.Repository
	sales salesRepo
}

type salesRepo interface {
	SalesTotalBySeller(ctx context.Context, sellerID string) (int64, error)
}

func New(repo productrepo.Repository, sales salesRepo) *Service {
	return &Service{repo: repo, sales: sales}
}

// Input carries the mutable product fields. Price arrives in cents,
// already converted at the handler boundary.
type Input struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	ImageURL    string
	Stock       int
}

// Overview summarizes a seller's catalog and sales for the dashboard.
type Overview struct {
	TotalProducts   int   `json:"totalProducts"`
	LowStock        int   `json:"lowStock"`
	TotalSalesCents int64 `json:"totalSalesCents"`
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Product{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Currency:    currencyOrDefault(in.Currency),
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	})
}

// Update mutates a product on behalf of its owner; other sellers get
// ErrNotFound from the repository.
func (s *Service) Update(ctx context.Context, ownerID, id string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Currency:    currencyOrDefault(in.Currency),
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	})
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *Service) OverviewFor(ctx context.Context, ownerID string) (*Overview, error) {
	stats, err := s.repo.StatsByOwner(ctx, ownerID, lowStockBelow)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.SalesTotalBySeller(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalProducts:   stats.TotalProducts,
		LowStock:        stats.LowStock,
		TotalSalesCents: sales,
	}, nil
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if in.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "USD"
	}
	return c
}
