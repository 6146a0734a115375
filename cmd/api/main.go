package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/avellaneda-dev/storefront-backend/api"
	"github.com/avellaneda-dev/storefront-backend/api/routes"
	"github.com/avellaneda-dev/storefront-backend/internal/adminauth"
	"github.com/avellaneda-dev/storefront-backend/internal/downloads"
	"github.com/avellaneda-dev/storefront-backend/internal/fulfillment"
	"github.com/avellaneda-dev/storefront-backend/internal/orders"
	"github.com/avellaneda-dev/storefront-backend/internal/products"
	"github.com/avellaneda-dev/storefront-backend/internal/reports"
	"github.com/avellaneda-dev/storefront-backend/internal/users"
	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
	"github.com/avellaneda-dev/storefront-backend/pkg/metrics"
	"github.com/avellaneda-dev/storefront-backend/pkg/migrate"
	"github.com/avellaneda-dev/storefront-backend/pkg/redis"
	"github.com/avellaneda-dev/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}
	paymentRetriever := stripe.NewPaymentRetriever(stripeClient, cfg.Stripe.Timeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	productsRepo := products.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())
	downloadsRepo := downloads.NewRepository(dbClient.DB())
	adminsRepo := adminauth.NewRepository(dbClient.DB())

	downloadsSvc, err := downloads.NewService(downloadsRepo, cfg.Downloads, logg)
	requireService(logg, "downloads", err)

	productsSvc, err := products.NewService(productsRepo, logg)
	requireService(logg, "products", err)

	adminAuthSvc, err := adminauth.NewService(adminsRepo, cfg.JWT, logg)
	requireService(logg, "admin auth", err)

	fulfillmentSvc, err := fulfillment.NewService(
		paymentRetriever,
		productsRepo,
		ordersRepo,
		usersRepo,
		downloadsSvc,
		dbClient,
		cfg.Fulfillment,
		logg,
	)
	requireService(logg, "fulfillment", err)

	reportsSvc, err := reports.NewService(ordersRepo, usersRepo, productsRepo, cfg.Reports, logg)
	requireService(logg, "reports", err)

	if port := os.Getenv("PORT"); port != "" {
		cfg.App.Port = port
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       ":" + cfg.App.Port,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(cfg, logg, routes.Deps{
		DB:          dbClient,
		Redis:       redisClient,
		Metrics:     httpMetrics,
		Registry:    registry,
		AdminAuth:   adminAuthSvc,
		Products:    productsSvc,
		Fulfillment: fulfillmentSvc,
		Downloads:   downloadsSvc,
		Reports:     reportsSvc,
		Orders:      ordersRepo,
	})

	server := api.NewServer(cfg, handler)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
