package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/domain"
	checkoutsvc "marketplace/internal/service/checkout"
	productsvc "marketplace/internal/service/product"
	usersvc "marketplace/internal/service/user"
)

type stubUsers struct {
	lookupUser *domain.User
	lookupErr  error
}

func (s *stubUsers) Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error) {
	return &domain.User{Email: in.Email, Role: in.Role}, nil
}

func (s *stubUsers) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	return &domain.User{Email: email}, "access", "refresh", nil
}

func (s *stubUsers) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.lookupUser, nil
}

func (s *stubUsers) AccessTTLSeconds() int { return 3600 }

type stubProducts struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubProducts) List(ctx context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProducts) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProducts) Create(ctx context.Context, ownerID string, in productsvc.Input) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{OwnerID: ownerID, Name: in.Name, PriceCents: in.PriceCents}, nil
}

func (s *stubProducts) Update(ctx context.Context, ownerID, id string, in productsvc.Input) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id, OwnerID: ownerID, Name: in.Name, PriceCents: in.PriceCents}, nil
}

func (s *stubProducts) Delete(ctx context.Context, ownerID, id string) error { return s.err }

func (s *stubProducts) OverviewFor(ctx context.Context, ownerID string) (*productsvc.Overview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.Overview{}, nil
}

type stubCarts struct {
	lines []domain.CartLine
	line  *domain.CartLine
	err   error
}

func (s *stubCarts) List(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.lines, s.err
}

func (s *stubCarts) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.line, nil
}

func (s *stubCarts) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.line, nil
}

func (s *stubCarts) Remove(ctx context.Context, userID, lineID string) error { return s.err }

type stubCheckout struct {
	initiateURL string
	initiateErr error
	finalizeID  string
	finalizeErr error

	gotInitiate *checkoutsvc.InitiateInput
	gotSession  string
}

func (s *stubCheckout) Initiate(ctx context.Context, in checkoutsvc.InitiateInput) (string, error) {
	s.gotInitiate = &in
	if s.initiateErr != nil {
		return "", s.initiateErr
	}
	return s.initiateURL, nil
}

func (s *stubCheckout) Finalize(ctx context.Context, sessionID string) (string, error) {
	s.gotSession = sessionID
	if s.finalizeErr != nil {
		return "", s.finalizeErr
	}
	return s.finalizeID, nil
}

type stubOrderSvc struct {
	orders []domain.Order
	order  *domain.Order
	err    error
}

func (s *stubOrderSvc) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderSvc) Delete(ctx context.Context, userID, id string) error { return s.err }

func defaultDeps() Deps {
	return Deps{
		UserSvc:     &stubUsers{lookupUser: &domain.User{ID: "user-1", Role: domain.RoleBuyer}},
		ProductSvc:  &stubProducts{},
		CartSvc:     &stubCarts{},
		CheckoutSvc: &stubCheckout{},
		OrderSvc:    &stubOrderSvc{},
	}
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	router, err := buildRouter(log.New(io.Discard, "", 0), nil, deps, Options{})
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return router
}

func doJSON(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return got
}

func TestRouterRequiresServices(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = nil
	if _, err := buildRouter(log.New(io.Discard, "", 0), nil, deps, Options{}); err == nil {
		t.Fatal("expected error for missing service")
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := newTestRouter(t, defaultDeps())

	rec := doJSON(t, router, http.MethodGet, "/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeRejectsBadToken(t *testing.T) {
	deps := defaultDeps()
	deps.UserSvc = &stubUsers{lookupErr: usersvc.ErrInvalidToken}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/me", "", "nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeReturnsUser(t *testing.T) {
	deps := defaultDeps()
	deps.UserSvc = &stubUsers{lookupUser: &domain.User{ID: "user-1", Email: "a@b.c", Role: domain.RoleBuyer}}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/me", "", "token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["email"] != "a@b.c" {
		t.Fatalf("unexpected body: %v", got)
	}
}

func TestSellerRoutesRejectBuyers(t *testing.T) {
	router := newTestRouter(t, defaultDeps())

	rec := doJSON(t, router, http.MethodGet, "/seller/products", "", "token")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestBuyerRoutesRejectSellers(t *testing.T) {
	deps := defaultDeps()
	deps.UserSvc = &stubUsers{lookupUser: &domain.User{ID: "seller-1", Role: domain.RoleSeller}}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/cart", "", "token")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	deps := defaultDeps()
	deps.ProductSvc = &stubProducts{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/products/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateProductConvertsPriceToCents(t *testing.T) {
	deps := defaultDeps()
	deps.UserSvc = &stubUsers{lookupUser: &domain.User{ID: "seller-1", Role: domain.RoleSeller}}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/seller/products",
		`{"name":"Mug","price":12.49,"stock":3}`, "token")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body %s)", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["priceCents"] != float64(1249) {
		t.Fatalf("expected priceCents 1249, got %v", got["priceCents"])
	}
}

func TestAddCartRequiresProductID(t *testing.T) {
	router := newTestRouter(t, defaultDeps())

	rec := doJSON(t, router, http.MethodPost, "/cart", `{"quantity":2}`, "token")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteOrderNotFound(t *testing.T) {
	deps := defaultDeps()
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodDelete, "/orders/unknown", "", "token")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, defaultDeps())

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
