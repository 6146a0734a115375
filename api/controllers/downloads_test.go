package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/internal/downloads"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, tokenID uuid.UUID) (*downloads.Grant, error)
}

func (s stubResolver) Resolve(ctx context.Context, tokenID uuid.UUID) (*downloads.Grant, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, tokenID)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "download not found")
}

func withTokenID(req *http.Request, tokenID string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("tokenId", tokenID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestResolveDownload(t *testing.T) {
	tokenID := uuid.New()
	service := stubResolver{
		resolveFn: func(ctx context.Context, id uuid.UUID) (*downloads.Grant, error) {
			if id != tokenID {
				t.Fatalf("unexpected token id %s", id)
			}
			return &downloads.Grant{
				TokenID:     tokenID,
				ProductID:   uuid.New(),
				ProductName: "Sample Pack Vol. 1",
				FilePath:    "files/sample-pack.zip",
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		},
	}

	handler := ResolveDownload(service, nil)
	req := withTokenID(httptest.NewRequest(http.MethodGet, "/", nil), tokenID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data downloads.Grant `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.FilePath != "files/sample-pack.zip" {
		t.Fatalf("unexpected grant %v", envelope.Data)
	}
}

func TestResolveDownload_MalformedID(t *testing.T) {
	handler := ResolveDownload(stubResolver{}, nil)
	req := withTokenID(httptest.NewRequest(http.MethodGet, "/", nil), "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestResolveDownload_Expired(t *testing.T) {
	service := stubResolver{
		resolveFn: func(ctx context.Context, id uuid.UUID) (*downloads.Grant, error) {
			return nil, pkgerrors.New(pkgerrors.CodeTokenExpired, "download link expired")
		},
	}

	handler := ResolveDownload(service, nil)
	req := withTokenID(httptest.NewRequest(http.MethodGet, "/", nil), uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusGone {
		t.Fatalf("expected 410 got %d", resp.Code)
	}
}
