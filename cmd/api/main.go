package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oakhaus/oakhaus-api/internal/cache"
	"github.com/oakhaus/oakhaus-api/internal/config"
	"github.com/oakhaus/oakhaus-api/internal/database"
	"github.com/oakhaus/oakhaus-api/internal/handler"
	"github.com/oakhaus/oakhaus-api/internal/middleware"
	"github.com/oakhaus/oakhaus-api/internal/repository"
	"github.com/oakhaus/oakhaus-api/internal/service"
	"github.com/oakhaus/oakhaus-api/internal/sse"
	"github.com/oakhaus/oakhaus-api/internal/utils"
	"github.com/oakhaus/oakhaus-api/internal/worker"
)

// main is the application entrypoint for the Oakhaus storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting oakhaus api")

	utils.InitJWT(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	bestSellerCache := cache.NewBestSellerCache(redisClient, cfg.BestSeller.CacheTTL)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	featuredRepo := repository.NewFeaturedRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 5. Initialize SSE hub for admin real-time updates
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo)
	addressSvc := service.NewAddressService(addressRepo)
	catalogSvc := service.NewCatalogService(productRepo, inventoryRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo)
	featuredSvc := service.NewFeaturedService(featuredRepo, featuredRepo, productRepo)

	aggregator := service.NewSalesAggregator(orderRepo, productRepo)
	bestSellerSvc := service.NewBestSellerService(aggregator, bestSellerCache, cfg.BestSeller.MinUnits, cfg.BestSeller.TrailingDays)

	orderSvc := service.NewOrderService(orderRepo, cartRepo, addressRepo, notificationSvc, notifier, bestSellerSvc)

	storageSvc, err := service.NewStorageService(&cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("Storage service initialization failed - image upload will be disabled")
	}

	imageSearchSvc := service.NewImageSearchService(productRepo, cfg)
	textSearchSvc := service.NewTextSearchService(productRepo, &cfg.Search)

	// 7. Initialize handlers
	rateLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:         handler.NewHealthHandler(db, redisClient),
		Auth:           handler.NewAuthHandler(authSvc, rateLimiter),
		Catalog:        handler.NewCatalogHandler(catalogSvc, featuredSvc, bestSellerSvc),
		Search:         handler.NewSearchHandler(imageSearchSvc, textSearchSvc),
		Cart:           handler.NewCartHandler(cartSvc),
		Order:          handler.NewOrderHandler(orderSvc),
		Address:        handler.NewAddressHandler(addressSvc),
		Notification:   handler.NewNotificationHandler(notificationSvc),
		AdminProduct:   handler.NewAdminProductHandler(catalogSvc, storageSvc),
		AdminInventory: handler.NewAdminInventoryHandler(inventorySvc),
		AdminFeatured:  handler.NewAdminFeaturedHandler(featuredSvc),
		AdminOrder:     handler.NewAdminOrderHandler(orderSvc),
		SSE:            handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewBestSellerWorker(bestSellerSvc, cfg.Worker.BestSellerInterval).Start(ctx)
	go worker.NewLowStockWorker(inventorySvc, notificationSvc, notifier, cfg.Worker.LowStockInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Catalog        *handler.CatalogHandler
	Search         *handler.SearchHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	Address        *handler.AddressHandler
	Notification   *handler.NotificationHandler
	AdminProduct   *handler.AdminProductHandler
	AdminInventory *handler.AdminInventoryHandler
	AdminFeatured  *handler.AdminFeaturedHandler
	AdminOrder     *handler.AdminOrderHandler
	SSE            *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth
	router.POST("/v1/auth/register", handlers.Auth.Register)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Public storefront
	catalog := router.Group("/v1")
	{
		catalog.GET("/products", handlers.Catalog.GetProducts)
		catalog.GET("/products/:id", handlers.Catalog.GetProduct)
		catalog.GET("/categories", handlers.Catalog.GetCategories)
		catalog.GET("/best-seller", handlers.Catalog.GetBestSeller)
		catalog.GET("/featured", handlers.Catalog.GetFeatured)
		catalog.POST("/search/image", handlers.Search.SearchByImage)
		catalog.POST("/search/text", handlers.Search.SearchByText)
	}

	// Authenticated customer routes
	user := router.Group("/v1")
	user.Use(jwtMiddleware.Handle())
	{
		user.GET("/profile", handlers.Auth.GetProfile)

		user.GET("/cart", handlers.Cart.GetCart)
		user.POST("/cart/items", handlers.Cart.AddItem)
		user.PUT("/cart/items/:productId", handlers.Cart.UpdateItem)
		user.DELETE("/cart/items/:productId", handlers.Cart.RemoveItem)
		user.DELETE("/cart", handlers.Cart.ClearCart)

		user.POST("/orders", handlers.Order.Checkout)
		user.GET("/orders", handlers.Order.GetOrders)
		user.GET("/orders/:orderId", handlers.Order.GetOrder)
		user.POST("/orders/:orderId/cancel", handlers.Order.CancelOrder)
		user.POST("/orders/:orderId/received", handlers.Order.MarkReceived)

		user.GET("/addresses", handlers.Address.GetAddresses)
		user.POST("/addresses", handlers.Address.CreateAddress)
		user.PUT("/addresses/:id", handlers.Address.UpdateAddress)
		user.DELETE("/addresses/:id", handlers.Address.DeleteAddress)

		user.GET("/notifications", handlers.Notification.GetNotifications)
		user.PUT("/notifications/read-all", handlers.Notification.MarkAllRead)
		user.PUT("/notifications/:id/read", handlers.Notification.MarkRead)
	}

	// SSE stream authenticates via query param inside the handler.
	router.GET("/v1/admin/sse", handlers.SSE.Stream)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		admin.POST("/accounts", handlers.Auth.CreateAdmin)

		// Product Management
		admin.GET("/products", handlers.AdminProduct.GetProducts)
		admin.POST("/products", handlers.AdminProduct.CreateProduct)
		admin.PUT("/products/:id", handlers.AdminProduct.UpdateProduct)
		admin.PATCH("/products/:id/status", handlers.AdminProduct.UpdateStatus)
		admin.DELETE("/products/:id", handlers.AdminProduct.DeleteProduct)
		admin.POST("/products/:id/image", handlers.AdminProduct.UploadImage)

		// Inventory Management
		admin.GET("/inventory/low-stock", handlers.AdminInventory.GetLowStock)
		admin.GET("/inventory/:productId", handlers.AdminInventory.GetInventory)
		admin.POST("/inventory/:productId/restock", handlers.AdminInventory.Restock)
		admin.PUT("/inventory/:productId", handlers.AdminInventory.Adjust)

		// Featured Collection
		admin.GET("/featured", handlers.AdminFeatured.GetFeatured)
		admin.POST("/featured", handlers.AdminFeatured.AddFeatured)
		admin.PUT("/featured/order", handlers.AdminFeatured.ReorderFeatured)
		admin.DELETE("/featured/:productId", handlers.AdminFeatured.RemoveFeatured)

		// Order Management
		admin.GET("/orders", handlers.AdminOrder.GetOrders)
		admin.GET("/orders/stats", handlers.AdminOrder.GetStats)
		admin.GET("/orders/:orderId", handlers.AdminOrder.GetOrder)
		admin.PATCH("/orders/:orderId/status", handlers.AdminOrder.UpdateStatus)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
