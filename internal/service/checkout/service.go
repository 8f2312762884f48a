package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"

	"marketplace/internal/domain"
	"marketplace/internal/payment"
)

var (
	// ErrMissingInput is returned when the buyer id or item list is absent.
	ErrMissingInput = errors.New("missing user or items")
	// ErrPaymentIncomplete gates unpaid sessions out of finalization.
	ErrPaymentIncomplete = errors.New("payment not completed")
	// ErrMissingMetadata is returned when a session carries no usable
	// checkout snapshot.
	ErrMissingMetadata = errors.New("missing metadata")
)

// Service coordinates the two checkout steps: initiating a hosted
// payment session and finalizing a paid one into a durable order.
type Service struct {
	payments  payment.Provider
	checkouts checkoutStore
	orders    orderStore
	carts     cartDeleter
	publisher OrderPublisher
	siteURL   string
	logger    *log.Logger
}

type checkoutStore interface {
	Create(ctx context.Context, pc domain.PendingCheckout) error
	Get(ctx context.Context, sessionID string) (*domain.PendingCheckout, error)
}

type orderStore interface {
	CreateFromCheckout(ctx context.Context, pc domain.PendingCheckout) (*domain.Order, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Order, error)
}

type cartDeleter interface {
	DeleteByIDs(ctx context.Context, ids []string) error
}

// OrderPublisher emits an event for each newly created order. A nil
// publisher disables event emission.
type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, o *domain.Order) error
}

func New(payments payment.Provider, checkouts checkoutStore, orders orderStore, carts cartDeleter, publisher OrderPublisher, siteURL string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		payments:  payments,
		checkouts: checkouts,
		orders:    orders,
		carts:     carts,
		publisher: publisher,
		siteURL:   siteURL,
		logger:    logger,
	}
}

// ItemInput is one cart line as submitted by the client. Price is the
// decimal unit price; it is converted to integer cents here and never
// consulted again after the snapshot is taken.
type ItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  *string `json:"image_url"`
	CartID    string  `json:"cart_id"`
}

// InitiateInput is the checkout-session request body.
type InitiateInput struct {
	UserID string      `json:"user_id"`
	Items  []ItemInput `json:"items"`
}

type metaCartItem struct {
	CartID    string  `json:"cart_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Initiate builds a hosted payment session for the given cart snapshot
// and records a pending checkout keyed by the session id. It returns
// the session's redirect URL. Validation failures happen before any
// external call; the products and carts tables are never touched.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (string, error) {
	if in.UserID == "" || len(in.Items) == 0 {
		return "", ErrMissingInput
	}

	lineItems := make([]payment.LineItem, 0, len(in.Items))
	metaCart := make([]metaCartItem, 0, len(in.Items))
	snapshot := make([]domain.CheckoutItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return "", ErrMissingInput
		}
		cents := int64(math.Round(it.Price * 100))
		imageURL := ""
		if it.ImageURL != nil {
			imageURL = *it.ImageURL
		}
		lineItems = append(lineItems, payment.LineItem{
			Name:            it.Name,
			UnitAmountCents: cents,
			Quantity:        it.Quantity,
			ImageURL:        imageURL,
		})
		metaCart = append(metaCart, metaCartItem{
			CartID:    it.CartID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		snapshot = append(snapshot, domain.CheckoutItem{
			CartLineID: it.CartID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: cents,
		})
	}

	cartJSON, err := json.Marshal(metaCart)
	if err != nil {
		return "", err
	}

	sess, err := s.payments.CreateCheckoutSession(ctx, payment.CreateSessionInput{
		Currency: "usd",
		Items:    lineItems,
		Metadata: map[string]string{
			"user_id": in.UserID,
			"cart":    string(cartJSON),
		},
		SuccessURL: s.siteURL + "/dashboard/buyer/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.siteURL + "/dashboard/buyer/cart",
	})
	if err != nil {
		return "", err
	}

	if err := s.checkouts.Create(ctx, domain.PendingCheckout{
		SessionID: sess.ID,
		UserID:    in.UserID,
		Items:     snapshot,
	}); err != nil {
		return "", err
	}

	return sess.URL, nil
}

// Finalize converts a paid payment session into a durable order. The
// order header, its lines, and the pending-checkout consumption commit
// in one transaction; a replayed session resolves to the order it
// already produced. Cart cleanup and event publishing stay best-effort
// after the commit.
func (s *Service) Finalize(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrMissingInput
	}

	sess, err := s.payments.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.PaymentStatus != payment.StatusPaid {
		return "", ErrPaymentIncomplete
	}
	if sess.Metadata["user_id"] == "" || sess.Metadata["cart"] == "" {
		return "", ErrMissingMetadata
	}

	if existing, err := s.orders.GetBySession(ctx, sessionID); err == nil {
		return existing.ID, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	pc, err := s.checkouts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrMissingMetadata
		}
		return "", err
	}
	if len(pc.Items) == 0 {
		return "", ErrMissingMetadata
	}

	order, err := s.orders.CreateFromCheckout(ctx, *pc)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a concurrent race; the winner's order is the result.
			existing, getErr := s.orders.GetBySession(ctx, sessionID)
			if getErr != nil {
				return "", err
			}
			return existing.ID, nil
		}
		return "", err
	}

	s.cleanupCart(ctx, order.ID, pc.Items)

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Printf("checkout: publish OrderCreated order_id=%s err=%v", order.ID, err)
		}
	}

	return order.ID, nil
}

// cleanupCart removes the checked-out cart lines. Failure is logged and
// swallowed: the order is already durable and the buyer still gets a
// success result.
func (s *Service) cleanupCart(ctx context.Context, orderID string, items []domain.CheckoutItem) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.CartLineID != "" {
			ids = append(ids, it.CartLineID)
		}
	}
	if err := s.carts.DeleteByIDs(ctx, ids); err != nil {
		s.logger.Printf("checkout: clear cart lines order_id=%s err=%v", orderID, err)
	}
}
