package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/api/responses"
	"github.com/avellaneda-dev/storefront-backend/api/validators"
	"github.com/avellaneda-dev/storefront-backend/internal/fulfillment"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// Fulfiller is the checkout-facing slice of the fulfillment service.
type Fulfiller interface {
	Fulfill(ctx context.Context, input fulfillment.Input) (*fulfillment.Result, error)
	Precheck(ctx context.Context, email string, productID uuid.UUID) (*fulfillment.PrecheckResult, error)
}

func FulfillCheckout(service Fulfiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input fulfillment.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Fulfill(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusCreated
		if result.AlreadyFulfilled {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

func PrecheckPurchase(service Fulfiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email is required"))
			return
		}

		productID, err := uuid.Parse(r.URL.Query().Get("product_id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}

		result, err := service.Precheck(ctx, email, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
