package cart

import (
	"context"
	"errors"

	"marketplace/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT cl.id::text, cl.user_id::text, cl.product_id::text, cl.quantity, cl.created_at,
       p.id::text, p.owner_id::text, p.name, COALESCE(p.description, ''), p.price_cents, p.currency, p.image_url, p.stock, p.created_at, p.updated_at
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.user_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		var p domain.Product
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt,
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.PriceCents, &p.Currency, &p.ImageURL, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		line.Product = &p
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddLine inserts a new line or increments the quantity of the user's
// existing line for the same product. One row per (user, product).
func (r *postgresRepo) AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_lines (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING id::text, user_id::text, product_id::text, quantity, created_at
`
	var line domain.CartLine
	if err := r.pool.QueryRow(ctx, q, userID, productID, quantity).Scan(
		&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	const q = `
UPDATE cart_lines
SET quantity = $1
WHERE id = $2 AND user_id = $3
RETURNING id::text, user_id::text, product_id::text, quantity, created_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, quantity, lineID, userID).Scan(
		&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) DeleteLine(ctx context.Context, userID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes the checked-out lines after finalization. Lines
// already removed by the buyer are skipped silently.
func (r *postgresRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE id = ANY($1)`, ids)
	return err
}
