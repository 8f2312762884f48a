package product

import (
	"context"
	"errors"
	"io"
	"log"

	"marketplace/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, owner_id::text, name, COALESCE(description, ''), price_cents, currency, image_url, stock, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE owner_id = $1
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q, ownerID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.ImageURL, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (owner_id, name, description, price_cents, currency, image_url, stock)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.OwnerID, p.Name, p.Description, p.PriceCents, p.Currency, p.ImageURL, p.Stock).Scan(
		&out.ID, &out.OwnerID, &out.Name, &out.Description, &out.PriceCents, &out.Currency, &out.ImageURL, &out.Stock, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: create owner_id=%s error=%v", p.OwnerID, err)
		return nil, err
	}
	return &out, nil
}

// Update mutates a product only when the owner matches; other callers
// see ErrNotFound rather than an ownership hint.
func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $1,
    description = NULLIF($2, ''),
    price_cents = $3,
    currency = $4,
    image_url = $5,
    stock = $6,
    updated_at = now()
WHERE id = $7 AND owner_id = $8
RETURNING ` + productColumns + `
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.Currency, p.ImageURL, p.Stock, p.ID, p.OwnerID).Scan(
		&out.ID, &out.OwnerID, &out.Name, &out.Description, &out.PriceCents, &out.Currency, &out.ImageURL, &out.Stock, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, ownerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) StatsByOwner(ctx context.Context, ownerID string, lowStockBelow int) (OwnerStats, error) {
	const q = `
SELECT COUNT(*), COUNT(*) FILTER (WHERE stock < $2)
FROM products
WHERE owner_id = $1
`
	var stats OwnerStats
	if err := r.pool.QueryRow(ctx, q, ownerID, lowStockBelow).Scan(&stats.TotalProducts, &stats.LowStock); err != nil {
		r.logger.Printf("product repo: stats owner_id=%s error=%v", ownerID, err)
		return OwnerStats{}, err
	}
	return stats, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.ImageURL, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}
