package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"marketplace/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, pc domain.PendingCheckout) error {
	snapshot, err := json.Marshal(pc.Items)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO pending_checkouts (session_id, user_id, snapshot)
VALUES ($1, $2, $3)
`
	if _, err := r.pool.Exec(ctx, q, pc.SessionID, pc.UserID, snapshot); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, sessionID string) (*domain.PendingCheckout, error) {
	const q = `
SELECT session_id, user_id::text, snapshot, consumed_at, created_at
FROM pending_checkouts
WHERE session_id = $1
LIMIT 1
`
	var pc domain.PendingCheckout
	var snapshot []byte
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(&pc.SessionID, &pc.UserID, &snapshot, &pc.ConsumedAt, &pc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &pc.Items); err != nil {
		return nil, err
	}
	return &pc, nil
}
