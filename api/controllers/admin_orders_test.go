package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/internal/orders"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	"github.com/avellaneda-dev/storefront-backend/pkg/pagination"
)

type stubOrderManager struct {
	listFn   func(ctx context.Context, params pagination.Params) (*orders.ListResult, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s stubOrderManager) List(ctx context.Context, params pagination.Params) (*orders.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &orders.ListResult{}, nil
}

func (s stubOrderManager) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.findFn != nil {
		return s.findFn(ctx, id)
	}
	return &models.Order{ID: id}, nil
}

func (s stubOrderManager) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func withAdminOrderID(req *http.Request, orderID string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("orderId", orderID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestAdminListOrders(t *testing.T) {
	orderID := uuid.New()
	repo := stubOrderManager{
		listFn: func(ctx context.Context, params pagination.Params) (*orders.ListResult, error) {
			if params.Limit != 5 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			return &orders.ListResult{
				Orders: []models.Order{{
					ID:              orderID,
					Email:           "buyer@example.com",
					PricePaidCents:  1750,
					PaymentIntentID: "pi_123",
				}},
				NextCursor: "next",
			}, nil
		},
	}

	handler := AdminListOrders(repo, nil)
	req := httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data orders.Page `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Orders) != 1 || envelope.Data.Orders[0].ID != orderID {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
	if envelope.Data.Orders[0].PricePaid != "17.50" {
		t.Fatalf("unexpected formatted price %q", envelope.Data.Orders[0].PricePaid)
	}
	if envelope.Data.NextCursor != "next" {
		t.Fatalf("expected cursor to pass through")
	}
}

func TestAdminDeleteOrder(t *testing.T) {
	orderID := uuid.New()
	deleted := false
	repo := stubOrderManager{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			if id != orderID {
				t.Fatalf("unexpected id %s", id)
			}
			deleted = true
			return nil
		},
	}

	handler := AdminDeleteOrder(repo, nil)
	req := withAdminOrderID(httptest.NewRequest(http.MethodDelete, "/", nil), orderID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !deleted {
		t.Fatalf("expected delete to run")
	}
}

func TestAdminDeleteOrder_NotFound(t *testing.T) {
	repo := stubOrderManager{
		findFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatalf("delete should not run for a missing order")
			return nil
		},
	}

	handler := AdminDeleteOrder(repo, nil)
	req := withAdminOrderID(httptest.NewRequest(http.MethodDelete, "/", nil), uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
