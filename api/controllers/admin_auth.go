package controllers

import (
	"context"
	"net/http"

	"github.com/avellaneda-dev/storefront-backend/api/responses"
	"github.com/avellaneda-dev/storefront-backend/api/validators"
	"github.com/avellaneda-dev/storefront-backend/internal/adminauth"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// AdminAuthenticator is the login-facing slice of the admin auth service.
type AdminAuthenticator interface {
	Login(ctx context.Context, input adminauth.LoginInput) (*adminauth.LoginResult, error)
}

func AdminLogin(service AdminAuthenticator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var input adminauth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Login(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
