package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/avellaneda-dev/storefront-backend/api/responses"
	"github.com/avellaneda-dev/storefront-backend/api/validators"
	"github.com/avellaneda-dev/storefront-backend/internal/reports"
	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// Reporter is the dashboard-facing slice of the reporting service.
type Reporter interface {
	Summary(ctx context.Context, params reports.RangeParams) (*reports.DashboardSummary, error)
	Charts(ctx context.Context, params reports.RangeParams) (*reports.DashboardCharts, error)
}

func DashboardSummary(service Reporter, cfg config.ReportsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := rangeParamsFromRequest(r, cfg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := service.Summary(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func DashboardCharts(service Reporter, cfg config.ReportsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := rangeParamsFromRequest(r, cfg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		charts, err := service.Charts(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, charts)
	}
}

func rangeParamsFromRequest(r *http.Request, cfg config.ReportsConfig) (reports.RangeParams, error) {
	loc := cfg.Location()

	from, err := validators.ParseQueryDate(r, "from", loc)
	if err != nil {
		return reports.RangeParams{}, err
	}
	to, err := validators.ParseQueryDate(r, "to", loc)
	if err != nil {
		return reports.RangeParams{}, err
	}

	return reports.RangeParams{
		Key:  strings.TrimSpace(r.URL.Query().Get("range")),
		From: from,
		To:   to,
	}, nil
}
