package httpserver

import (
	"errors"
	"net/http"
	"testing"

	checkoutsvc "marketplace/internal/service/checkout"
)

func TestCheckoutMissingInput(t *testing.T) {
	deps := defaultDeps()
	svc := &stubCheckout{initiateErr: checkoutsvc.ErrMissingInput}
	deps.CheckoutSvc = svc
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout", `{"user_id":"","items":[]}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Missing user or items" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutProviderFailure(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = &stubCheckout{initiateErr: errors.New("stripe down")}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout",
		`{"user_id":"user-1","items":[{"product_id":"p1","name":"Mug","price":9.99,"quantity":1,"cart_id":"c1"}]}`, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Failed to create session" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutReturnsSessionURL(t *testing.T) {
	deps := defaultDeps()
	svc := &stubCheckout{initiateURL: "https://pay.example/s/cs_123"}
	deps.CheckoutSvc = svc
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout",
		`{"user_id":"user-1","items":[{"product_id":"p1","name":"Mug","price":9.99,"quantity":1,"cart_id":"c1"}]}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["url"] != "https://pay.example/s/cs_123" {
		t.Fatalf("unexpected url: %v", got["url"])
	}
	if svc.gotInitiate == nil || svc.gotInitiate.UserID != "user-1" || len(svc.gotInitiate.Items) != 1 {
		t.Fatalf("service saw wrong input: %+v", svc.gotInitiate)
	}
}

func TestCheckoutSuccessMissingSessionID(t *testing.T) {
	router := newTestRouter(t, defaultDeps())

	rec := doJSON(t, router, http.MethodPost, "/checkout/success", `{}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Missing session_id" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutSuccessUnpaidSession(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = &stubCheckout{finalizeErr: checkoutsvc.ErrPaymentIncomplete}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout/success", `{"session_id":"cs_123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Payment not completed" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutSuccessMissingMetadata(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = &stubCheckout{finalizeErr: checkoutsvc.ErrMissingMetadata}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout/success", `{"session_id":"cs_123"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Missing metadata" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutSuccessServerError(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = &stubCheckout{finalizeErr: errors.New("db down")}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout/success", `{"session_id":"cs_123"}`, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got["error"] != "Server error" {
		t.Fatalf("unexpected error message: %v", got["error"])
	}
}

func TestCheckoutSuccessReturnsOrderID(t *testing.T) {
	deps := defaultDeps()
	svc := &stubCheckout{finalizeID: "order-1"}
	deps.CheckoutSvc = svc
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/checkout/success", `{"session_id":"cs_123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["ok"] != true {
		t.Fatalf("expected ok true, got %v", got["ok"])
	}
	if got["order_id"] != "order-1" {
		t.Fatalf("unexpected order_id: %v", got["order_id"])
	}
	if svc.gotSession != "cs_123" {
		t.Fatalf("service saw session %q", svc.gotSession)
	}
}
