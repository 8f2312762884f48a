package payment

import "context"

// StatusPaid is the processor's payment status for a completed session.
const StatusPaid = "paid"

// LineItem describes one purchasable unit on the hosted checkout page,
// priced in integer minor-currency units.
type LineItem struct {
	Name            string
	UnitAmountCents int64
	Quantity        int
	ImageURL        string
}

// CreateSessionInput carries everything needed to build a hosted
// payment session. Metadata is stored opaquely on the session and read
// back at finalization.
type CreateSessionInput struct {
	Currency   string
	Items      []LineItem
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

// Session is the subset of the processor's session object this service
// reads.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// Provider abstracts the external payment processor so services and
// handlers can be tested with fakes.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
