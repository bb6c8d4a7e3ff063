package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/pkg/nominatim"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, version)
	if err != nil {
		slog.Error("Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Storefront backend
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error creating the storefront client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis is optional: without it the catalog is not cached and geocoder
	// lookups are not throttled.
	catalogCache := cache.NewNoop()
	geocoderLimiter := cache.NewNoopLimiter()

	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			slog.Warn("Redis unavailable, continuing without cache", slog.String("error", err.Error()))
		} else {
			catalogCache = cache.NewRedisCache(redisClient, &cfg.Cache)
			geocoderLimiter = cache.NewRedisRateLimiter(redisClient, cfg.RateConfig)

			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Error closing redis connection", slog.String("error", err.Error()))
				}
			}()
		}
	}

	geocoder := nominatim.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)

	// Services
	alertService := service.NewAlertService(cfg.Storefront.AlertTTL, cfg.Storefront.MaxAlerts, logger)
	sessionService := service.NewSessionService(repos.User, alertService, logger)
	cartStore := service.NewCartStore(repos.Cart, sessionService, alertService, logger)
	addressBook := service.NewAddressBook(repos.Address, sessionService, alertService, logger)
	orderService := service.NewOrderService(repos.Order, cartStore, addressBook, sessionService, alertService, cfg.Storefront.ShippingFee, logger)
	catalogService := service.NewCatalogService(repos.Product, catalogCache, cfg.Cache.DefaultTTL, logger)
	affiliateService := service.NewAffiliateService(repos.Affiliate, sessionService, alertService, cfg.Storefront.PublicURL, cfg.Storefront.MinWithdrawal, logger)
	locationService := service.NewLocationService(geocoder, geocoderLimiter, logger)

	sessionService.Subscribe(func(ctx context.Context, user *models.User) {
		if err := cartStore.OnSessionChange(ctx, user); err != nil {
			slog.Warn("Cart refresh after session change failed", slog.String("error", err.Error()))
		}
	})
	sessionService.Subscribe(addressBook.OnSessionChange)

	if err := sessionService.Refresh(ctx); err != nil {
		slog.Info("No active storefront session", slog.String("error", err.Error()))
	}

	go sessionService.Watch(ctx, cfg.Upstream.SessionCheckInterval)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	cartHandler := handlers.NewCartHandler(cartStore)
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	addressHandler := handlers.NewAddressHandler(addressBook)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService)
	locationHandler := handlers.NewLocationHandler(locationService)
	alertHandler := handlers.NewAlertHandler(alertService)
	guard := middleware.NewSessionGuard(sessionService)

	healthHandler, err := health.NewHealthHandler(cfg, version, &health.Endpoints{Storefront: repos.Client, Geocoder: geocoder})
	if err != nil {
		slog.Error("Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/session", sessionHandler.GetSession())
	routerMux.HandleFunc("POST /api/v1/session/login", sessionHandler.Login())
	routerMux.HandleFunc("POST /api/v1/session/logout", sessionHandler.Logout())
	routerMux.HandleFunc("PUT /api/v1/session/profile", guard.RequireSession(sessionHandler.UpdateProfile()))
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/refresh", cartHandler.Refresh())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.Clear())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/new-arrivals", productHandler.NewArrivals())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/{id}/share", affiliateHandler.ShareLink())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.Categories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}/breadcrumbs", productHandler.Breadcrumbs())
	routerMux.HandleFunc("GET /api/v1/checkout", guard.RequireSession(orderHandler.CheckoutContext()))
	routerMux.HandleFunc("POST /api/v1/checkout", guard.RequireSession(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", guard.RequireSession(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/addresses", guard.RequireSession(addressHandler.ListAddresses()))
	routerMux.HandleFunc("DELETE /api/v1/addresses/{id}", guard.RequireSession(addressHandler.DeleteAddress()))
	routerMux.HandleFunc("GET /api/v1/addresses/suggest", guard.RequireSession(addressHandler.Suggest()))
	routerMux.HandleFunc("GET /api/v1/affiliates/me", guard.RequireSession(affiliateHandler.Me()))
	routerMux.HandleFunc("POST /api/v1/affiliates/apply", guard.RequireSession(affiliateHandler.Apply()))
	routerMux.HandleFunc("POST /api/v1/affiliates/withdraw", guard.RequireSession(affiliateHandler.Withdraw()))
	routerMux.HandleFunc("GET /api/v1/locations/reverse", locationHandler.Reverse())
	routerMux.HandleFunc("GET /api/v1/locations/search", locationHandler.Search())
	routerMux.HandleFunc("GET /api/v1/alerts", alertHandler.ListAlerts())
	routerMux.HandleFunc("DELETE /api/v1/alerts/{id}", alertHandler.DismissAlert())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining, metrics innermost so it sees the matched pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr), slog.String("env", cfg.Env), slog.String("version", version))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Error flushing traces", slog.String("error", err.Error()))
	}

}
