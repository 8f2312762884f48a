package domain

import "time"

// CartLine is one (user, product, quantity) row of unfinalized purchase
// intent. The product join is populated on reads for display.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty"`
}
