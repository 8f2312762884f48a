package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/domain"
)

type userSeed struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Stock       int
}

// Apply inserts demo accounts and products for manual testing. It is
// idempotent: users upsert on email, products insert only when absent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "buyer@example.com", Password: "Buyer12345", FullName: "Demo Buyer", Role: domain.RoleBuyer},
		{Email: "seller@example.com", Password: "Seller12345", FullName: "Demo Seller", Role: domain.RoleSeller},
	}

	var sellerID string
	for _, u := range users {
		id, err := ensureUser(ctx, pool, u)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		if u.Role == domain.RoleSeller {
			sellerID = id
		}
	}

	products := []productSeed{
		{Name: "Demo T-Shirt", Description: "Soft cotton tee for demo purposes", PriceCents: 1999, Currency: "USD", Stock: 25},
		{Name: "Demo Mug", Description: "Ceramic mug with demo logo", PriceCents: 1299, Currency: "USD", Stock: 40},
		{Name: "Demo Poster", Description: "A2 matte print", PriceCents: 899, Currency: "USD", Stock: 3},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, sellerID, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO users (email, password_hash, full_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT ((lower(email))) DO UPDATE
SET full_name = EXCLUDED.full_name,
    role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Email, string(hashed), u.FullName, u.Role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, ownerID string, p productSeed) error {
	const q = `
INSERT INTO products (owner_id, name, description, price_cents, currency, stock)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (
    SELECT 1 FROM products WHERE owner_id = $1 AND name = $2
)
`
	_, err := pool.Exec(ctx, q, ownerID, p.Name, p.Description, p.PriceCents, p.Currency, p.Stock)
	return err
}
