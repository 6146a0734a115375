package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/api/responses"
	"github.com/avellaneda-dev/storefront-backend/api/validators"
	"github.com/avellaneda-dev/storefront-backend/internal/orders"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
	"github.com/avellaneda-dev/storefront-backend/pkg/pagination"
)

// OrderManager is the admin-facing slice of the order repository.
type OrderManager interface {
	List(ctx context.Context, params pagination.Params) (*orders.ListResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func AdminListOrders(repo OrderManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := repo.List(ctx, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders"))
			return
		}
		responses.WriteSuccess(w, orders.ToPage(result))
	}
}

func AdminDeleteOrder(repo OrderManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id"))
			return
		}

		if _, err := repo.FindByID(ctx, id); err != nil {
			if db.IsNotFound(err) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
				return
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order"))
			return
		}

		if err := repo.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
