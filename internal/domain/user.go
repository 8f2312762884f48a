package domain

import "time"

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User represents a registered marketplace account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidRole reports whether r is one of the supported account roles.
func ValidRole(r string) bool {
	return r == RoleBuyer || r == RoleSeller
}
