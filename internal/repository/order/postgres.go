package order

import (
	"context"
	"errors"
	"io"
	"log"

	"marketplace/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *postgresRepo) CreateFromCheckout(ctx context.Context, pc domain.PendingCheckout) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE pending_checkouts
SET consumed_at = now()
WHERE session_id = $1 AND consumed_at IS NULL
`, pc.SessionID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrAlreadyExists
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, session_id, total_cents)
VALUES ($1, $2, $3)
RETURNING id::text, user_id::text, session_id, total_cents, created_at
`, pc.UserID, pc.SessionID, pc.TotalCents()).Scan(
		&order.ID, &order.UserID, &order.SessionID, &order.TotalCents, &order.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	for _, it := range pc.Items {
		var line domain.OrderLine
		err = tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`, order.ID, it.ProductID, it.Quantity, it.PriceCents).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
		line.OrderID = order.ID
		line.ProductID = it.ProductID
		line.Quantity = it.Quantity
		line.PriceCents = it.PriceCents
		order.Lines = append(order.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order id=%s session=%s total_cents=%d lines=%d", order.ID, pc.SessionID, order.TotalCents, len(order.Lines))
	return &order, nil
}

func (r *postgresRepo) GetBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, session_id, total_cents, created_at
FROM orders
WHERE session_id = $1
LIMIT 1
`
	return r.fetchOrder(ctx, q, sessionID)
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, session_id, total_cents, created_at
FROM orders
WHERE id = $1 AND user_id = $2
LIMIT 1
`
	return r.fetchOrder(ctx, q, id, userID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, session_id, total_cents, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var sessionID *string
		if err := rows.Scan(&o.ID, &o.UserID, &sessionID, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		if sessionID != nil {
			o.SessionID = *sessionID
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.fetchLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SalesTotalBySeller sums finalized line totals over the seller's
// products for the dashboard.
func (r *postgresRepo) SalesTotalBySeller(ctx context.Context, sellerID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(ol.price_cents * ol.quantity), 0)
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE p.owner_id = $1
`
	var total int64
	if err := r.pool.QueryRow(ctx, q, sellerID).Scan(&total); err != nil {
		r.logger.Printf("order repo: sales total seller_id=%s error=%v", sellerID, err)
		return 0, err
	}
	return total, nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	var o domain.Order
	var sessionID *string
	err := r.pool.QueryRow(ctx, q, args...).Scan(&o.ID, &o.UserID, &sessionID, &o.TotalCents, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if sessionID != nil {
		o.SessionID = *sessionID
	}
	lines, err := r.fetchLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, quantity, price_cents
FROM order_lines
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.PriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
