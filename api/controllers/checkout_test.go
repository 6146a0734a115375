package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/internal/fulfillment"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
)

type stubFulfiller struct {
	fulfillFn  func(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error)
	precheckFn func(ctx context.Context, email string, productID uuid.UUID) (*fulfillment.PrecheckResult, error)
}

func (s stubFulfiller) Fulfill(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error) {
	if s.fulfillFn != nil {
		return s.fulfillFn(ctx, input)
	}
	return &fulfillment.Result{}, nil
}

func (s stubFulfiller) Precheck(ctx context.Context, email string, productID uuid.UUID) (*fulfillment.PrecheckResult, error) {
	if s.precheckFn != nil {
		return s.precheckFn(ctx, email, productID)
	}
	return &fulfillment.PrecheckResult{}, nil
}

func TestFulfillCheckout(t *testing.T) {
	orderID := uuid.New()
	service := stubFulfiller{
		fulfillFn: func(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error) {
			if input.PaymentIntentID != "pi_123" {
				t.Fatalf("unexpected intent %q", input.PaymentIntentID)
			}
			return &fulfillment.Result{
				OrderID:         orderID,
				ProductID:       uuid.New(),
				Email:           "buyer@example.com",
				DownloadTokenID: uuid.New(),
				TokenExpiresAt:  time.Now().Add(24 * time.Hour),
			}, nil
		},
	}

	handler := FulfillCheckout(service, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"payment_intent_id":"pi_123"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data fulfillment.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != orderID {
		t.Fatalf("unexpected order id %s", envelope.Data.OrderID)
	}
}

func TestFulfillCheckout_Replay(t *testing.T) {
	service := stubFulfiller{
		fulfillFn: func(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error) {
			return &fulfillment.Result{
				OrderID:          uuid.New(),
				AlreadyFulfilled: true,
			}, nil
		},
	}

	handler := FulfillCheckout(service, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"payment_intent_id":"pi_123"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for replay got %d", resp.Code)
	}
}

func TestFulfillCheckout_MissingIntent(t *testing.T) {
	handler := FulfillCheckout(stubFulfiller{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestFulfillCheckout_SecondPurchase(t *testing.T) {
	service := stubFulfiller{
		fulfillFn: func(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error) {
			return nil, pkgerrors.New(pkgerrors.CodeAlreadyPurchased, "product already purchased")
		},
	}

	handler := FulfillCheckout(service, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"payment_intent_id":"pi_456"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestPrecheckPurchase(t *testing.T) {
	productID := uuid.New()
	service := stubFulfiller{
		precheckFn: func(ctx context.Context, email string, id uuid.UUID) (*fulfillment.PrecheckResult, error) {
			if email != "buyer@example.com" || id != productID {
				t.Fatalf("unexpected args %q %s", email, id)
			}
			return &fulfillment.PrecheckResult{AlreadyPurchased: true}, nil
		},
	}

	handler := PrecheckPurchase(service, nil)
	req := httptest.NewRequest(http.MethodGet, "/?email=buyer@example.com&product_id="+productID.String(), nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data fulfillment.PrecheckResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.AlreadyPurchased {
		t.Fatalf("expected already_purchased true")
	}
}

func TestPrecheckPurchase_MissingEmail(t *testing.T) {
	handler := PrecheckPurchase(stubFulfiller{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/?product_id="+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
