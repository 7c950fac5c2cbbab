package router

import (
	"time"

	"zodiac/internal/config"
	"zodiac/internal/handler"
	"zodiac/internal/infra"
	"zodiac/internal/middleware"
	"zodiac/internal/model"
	"zodiac/internal/repository"
	"zodiac/internal/service"
	"zodiac/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	priceHistoryRepo := repository.NewPriceHistoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, supplierRepo, adminRepo,
		cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	orderSvc := service.NewOrderService(orderRepo, productRepo, userRepo, supplierRepo,
		movementRepo, dispatcher, time.Duration(cfg.StoreTimeoutSeconds)*time.Second)
	productSvc := service.NewProductService(productRepo, supplierRepo, movementRepo, priceHistoryRepo)
	catalogSvc := service.NewCatalogService(productRepo, orderRepo, supplierRepo, movementRepo, priceHistoryRepo)
	forecastSvc := service.NewForecastService(productRepo, cfg.ForecastProbeFactor, cfg.ReportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc, catalogSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, catalogSvc)
	restocksH := handler.NewRestocksHandler(orderSvc, catalogSvc)
	forecastH := handler.NewForecastHandler(forecastSvc)
	suppliersH := handler.NewSuppliersHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog reads — every authenticated actor
		anyActor := middleware.RequireActor(model.ActorAdmin, model.ActorSupplier, model.ActorCustomer)
		v1.GET("/products", anyActor, productsH.List)
		v1.GET("/products/:id", anyActor, productsH.Get)

		// Customer orders
		v1.POST("/orders", middleware.RequireActor(model.ActorCustomer), ordersH.Place)
		v1.GET("/orders/mine", middleware.RequireActor(model.ActorCustomer), ordersH.ListMine)

		// Supplier work queue
		v1.GET("/restocks/pending", middleware.RequireActor(model.ActorSupplier), restocksH.ListPending)
		v1.POST("/restocks/:id/confirm", middleware.RequireActor(model.ActorSupplier), restocksH.Confirm)

		// Admin
		admin := v1.Group("", middleware.RequireActor(model.ActorAdmin))
		{
			admin.GET("/orders", ordersH.List)
			admin.POST("/restocks", restocksH.Create)

			admin.POST("/products", productsH.Create)
			admin.PATCH("/products/:id/price", productsH.UpdatePrice)
			admin.PATCH("/products/:id/stock", productsH.AdjustStock)
			admin.GET("/products/:id/price-history", productsH.PriceHistory)
			admin.GET("/products/:id/movements", productsH.StockMovements)

			admin.GET("/suppliers", suppliersH.List)
			admin.GET("/inventory/alerts", productsH.LowStock)

			admin.GET("/forecast", forecastH.Estimate)
			admin.GET("/forecast/pdf", forecastH.ReportPDF)
		}
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
