package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avellaneda-dev/storefront-backend/api/controllers"
	"github.com/avellaneda-dev/storefront-backend/api/middleware"
	"github.com/avellaneda-dev/storefront-backend/internal/adminauth"
	"github.com/avellaneda-dev/storefront-backend/internal/downloads"
	"github.com/avellaneda-dev/storefront-backend/internal/fulfillment"
	"github.com/avellaneda-dev/storefront-backend/internal/orders"
	"github.com/avellaneda-dev/storefront-backend/internal/products"
	"github.com/avellaneda-dev/storefront-backend/internal/reports"
	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
	"github.com/avellaneda-dev/storefront-backend/pkg/metrics"
	pkgredis "github.com/avellaneda-dev/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Keeping it a
// struct saves callers from a dozen positional arguments.
type Deps struct {
	DB    controllers.Pinger
	Redis *pkgredis.Client

	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	AdminAuth   *adminauth.Service
	Products    *products.Service
	Fulfillment *fulfillment.Service
	Downloads   *downloads.Service
	Reports     *reports.Service
	Orders      *orders.Repository
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    pingerOrNil(deps.Redis),
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	idemStore := idempotencyStore(deps.Redis)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/fulfill", controllers.FulfillCheckout(deps.Fulfillment, logg))
			r.Get("/precheck", controllers.PrecheckPurchase(deps.Fulfillment, logg))
		})

		r.Get("/downloads/{tokenId}", controllers.ResolveDownload(deps.Downloads, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(deps.AdminAuth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Get("/dashboard", controllers.DashboardSummary(deps.Reports, cfg.Reports, logg))
			r.Get("/dashboard/charts", controllers.DashboardCharts(deps.Reports, cfg.Reports, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
				r.Get("/{productId}", controllers.AdminGetProduct(deps.Products, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Products, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
				r.Delete("/{orderId}", controllers.AdminDeleteOrder(deps.Orders, logg))
			})
		})
	})

	return r
}

// pingerOrNil keeps a typed-nil redis client from masquerading as a live
// dependency in the readiness map.
func pingerOrNil(c *pkgredis.Client) controllers.Pinger {
	if c == nil {
		return nil
	}
	return c
}

func idempotencyStore(c *pkgredis.Client) pkgredis.IdempotencyStore {
	if c == nil {
		return nil
	}
	return c
}
