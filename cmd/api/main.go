package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/core/config"
	"bakery-storefront/internal/core/httpclient"
	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/core/money"
	"bakery-storefront/internal/core/proxy"
	"bakery-storefront/internal/core/server"
	cartadapter "bakery-storefront/internal/features/cart/adapters"
	carthandler "bakery-storefront/internal/features/cart/handler"
	cartservice "bakery-storefront/internal/features/cart/service"
	catalogadapter "bakery-storefront/internal/features/catalog/adapters"
	cataloghandler "bakery-storefront/internal/features/catalog/handler"
	catalogservice "bakery-storefront/internal/features/catalog/service"
	checkoutadapter "bakery-storefront/internal/features/checkout/adapters"
	checkoutdomain "bakery-storefront/internal/features/checkout/domain"
	checkouthandler "bakery-storefront/internal/features/checkout/handler"
	checkoutservice "bakery-storefront/internal/features/checkout/service"
	orderadapter "bakery-storefront/internal/features/orders/adapters"
	orderhandler "bakery-storefront/internal/features/orders/handler"
	orderservice "bakery-storefront/internal/features/orders/service"
	sessionadapter "bakery-storefront/internal/features/session/adapters"
	sessionhandler "bakery-storefront/internal/features/session/handler"
	sessionservice "bakery-storefront/internal/features/session/service"

	"go.uber.org/zap"
)

// productIndexTTL bounds how long a listed product can be added to a cart by id.
const productIndexTTL = 24 * time.Hour

// @title Bakery Storefront API
// @version 1.0
// @description Storefront backend for the bakery: catalog, cart, checkout and order management over the bakery REST API.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Session, cart and checkout state live in Redis
	store, err := cache.NewRedisAdapter(cfg.RedisURL, "bakery:")
	if err != nil {
		l.Fatal("Invalid Redis configuration", zap.Error(err))
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		cancel()
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	cancel()
	l.Info("Redis connection verified")

	// Bakery backend gateway
	egress := proxy.FromConfig(cfg.Proxy)
	if egress.HasProxy() {
		l.Info("Routing backend calls through proxy", zap.String("proxy", egress.HostPort()))
	}
	api := apiclient.New(cfg.BakeryAPI.URL, httpclient.NewClient(cfg.BakeryAPI.Timeout(), egress))

	// Sessions
	sessionSvc := sessionservice.NewSessionService(
		sessionadapter.NewRedisStore(store),
		sessionadapter.NewBakeryAPIAdapter(api),
		cfg.Session.TTL(),
	)
	api.OnUnauthorized(sessionSvc.Teardown)
	sessionHdl := sessionhandler.NewSessionHandler(sessionSvc)

	// Catalog, degrading to the bundled product list when the backend is down
	fallback, err := catalogadapter.StaticCatalog()
	if err != nil {
		l.Fatal("Failed to load bundled catalog", zap.Error(err))
	}
	productGateway := catalogadapter.NewBakeryAPIAdapter(api)

	healthCtx, cancel := context.WithTimeout(context.Background(), cfg.BakeryAPI.Timeout())
	if err := productGateway.HealthCheck(healthCtx); err != nil {
		l.Warn("Bakery API unreachable, catalog will run degraded", zap.Error(err))
	} else {
		l.Info("Bakery API connection verified")
	}
	cancel()

	catalogSvc := catalogservice.NewCatalogService(
		productGateway,
		catalogadapter.NewRedisProductIndex(store, productIndexTTL),
		fallback,
	)
	catalogHdl := cataloghandler.NewCatalogHandler(catalogSvc)

	// Cart
	cartSvc := cartservice.NewCartService(cartadapter.NewRedisRepository(store, cfg.Session.TTL()), catalogSvc)
	cartHdl := carthandler.NewCartHandler(cartSvc)

	// Orders
	orderGateway := orderadapter.NewBakeryAPIAdapter(api)
	orderSvc := orderservice.NewOrderService(orderGateway)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	// Checkout
	checkoutSvc := checkoutservice.NewCheckoutService(
		checkoutadapter.NewRedisFlowRepository(store, cfg.Session.TTL(), 3*cfg.BakeryAPI.Timeout()),
		cartSvc,
		orderGateway,
		checkoutdomain.Pricing{
			ShippingCost:  money.FromFloat(cfg.Checkout.ShippingCost),
			PickupAddress: cfg.Checkout.StorePickupAddress,
		},
	)
	sessionSvc.AddLoginListener(checkoutSvc)
	sessionSvc.AddLogoutListener(checkoutSvc)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc)

	srv := server.New(cfg, store)

	// Register Routes
	app := srv.App
	app.Get("/products", catalogHdl.ListProducts)
	app.Get("/products/category/:name", catalogHdl.ListByCategory)

	visitor := sessionhandler.Middleware(sessionSvc, sessionhandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
	})

	auth := app.Group("/auth", visitor)
	auth.Post("/login", sessionHdl.Login)
	auth.Post("/register", sessionHdl.Register)
	auth.Post("/logout", sessionHdl.Logout)
	auth.Get("/me", sessionHdl.Me)
	auth.Patch("/me", sessionhandler.RequireAuth(), sessionHdl.UpdateProfile)

	cart := app.Group("/cart", visitor, sessionhandler.RefuseAdmin())
	cart.Get("/", cartHdl.GetCart)
	cart.Delete("/", cartHdl.ClearCart)
	cart.Post("/items", cartHdl.AddItem)
	cart.Post("/items/:id/increment", cartHdl.Increment)
	cart.Post("/items/:id/decrement", cartHdl.Decrement)
	cart.Delete("/items/:id", cartHdl.RemoveItem)

	checkout := app.Group("/checkout", visitor, sessionhandler.RefuseAdmin())
	checkout.Get("/", checkoutHdl.GetState)
	checkout.Post("/proceed", checkoutHdl.Proceed)
	checkout.Post("/continue", checkoutHdl.Continue)
	checkout.Post("/back", checkoutHdl.Back)
	checkout.Post("/finalize", checkoutHdl.Finalize)
	checkout.Post("/close", checkoutHdl.Close)

	orders := app.Group("/orders", visitor, sessionhandler.RequireAuth())
	orders.Get("/", orderHdl.ListOrders)
	orders.Get("/:id", orderHdl.GetOrder)
	orders.Patch("/:id/status", sessionhandler.RequireAdmin(), orderHdl.UpdateStatus)
	orders.Delete("/:id", sessionhandler.RequireAdmin(), orderHdl.DeleteOrder)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		l.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
