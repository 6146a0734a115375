package api

import (
	"net/http"
	"time"

	"github.com/avellaneda-dev/storefront-backend/pkg/config"
)

// NewServer wraps the router in an http.Server with conservative timeouts.
// Download responses carry only signed grant metadata, so nothing here needs
// a long write window.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
