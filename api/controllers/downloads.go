package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avellaneda-dev/storefront-backend/api/responses"
	"github.com/avellaneda-dev/storefront-backend/internal/downloads"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// DownloadResolver validates a token and returns its grant.
type DownloadResolver interface {
	Resolve(ctx context.Context, tokenID uuid.UUID) (*downloads.Grant, error)
}

func ResolveDownload(service DownloadResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenID, err := uuid.Parse(chi.URLParam(r, "tokenId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "download not found"))
			return
		}

		grant, err := service.Resolve(ctx, tokenID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, grant)
	}
}
