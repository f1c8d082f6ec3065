package router

import (
	"time"

	"shopforge/internal/config"
	"shopforge/internal/handler"
	"shopforge/internal/middleware"
	"shopforge/internal/repository"
	"shopforge/internal/service"
	"shopforge/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
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
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewStockHistoryRepository(db)
	alertRepo := repository.NewStockAlertRepository(db)
	settingsRepo := repository.NewCheckoutSettingsRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(productRepo, historyRepo, alertRepo, dispatcher)
	productSvc := service.NewProductService(productRepo, inventorySvc)
	categorySvc := service.NewCategoryService(categoryRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, inventorySvc)
	reportSvc := service.NewReportService(productRepo, historyRepo, alertRepo)
	checkoutSvc := service.NewCheckoutService(settingsRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	purchaseH := handler.NewPurchaseOrderHandler(purchaseSvc)
	reportH := handler.NewReportHandler(reportSvc, dispatcher, cfg)
	checkoutH := handler.NewCheckoutSettingsHandler(checkoutSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Storefront reads the checkout configuration unauthenticated (cached)
	r.GET("/api/checkout-settings", checkoutH.GetPublic)

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Admin surface — any back-office role gets in, capabilities are checked
	// per route.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := r.Group("/api/admin", jwtMW)
	{
		// Catalog
		admin.GET("/products", middleware.RequirePermission(middleware.PermInventoryView), productH.List)
		admin.GET("/products/:id", middleware.RequirePermission(middleware.PermInventoryView), productH.GetByID)
		prods := admin.Group("/products", middleware.RequirePermission(middleware.PermInventoryWrite))
		{
			prods.POST("", productH.Create)
			prods.PUT("/:id", productH.Update)
			prods.DELETE("/:id", productH.Deactivate)
			prods.PATCH("/:id/reactivate", productH.Reactivate)
		}

		admin.GET("/categories", middleware.RequirePermission(middleware.PermInventoryView), categoryH.List)
		cats := admin.Group("/categories", middleware.RequirePermission(middleware.PermInventoryWrite))
		{
			cats.POST("", categoryH.Create)
			cats.PUT("/:id", categoryH.Update)
			cats.DELETE("/:id", categoryH.Deactivate)
		}

		admin.GET("/suppliers", middleware.RequirePermission(middleware.PermInventoryView), supplierH.List)
		admin.GET("/suppliers/:id", middleware.RequirePermission(middleware.PermInventoryView), supplierH.GetByID)
		sups := admin.Group("/suppliers", middleware.RequirePermission(middleware.PermInventoryWrite))
		{
			sups.POST("", supplierH.Create)
			sups.PUT("/:id", supplierH.Update)
			sups.DELETE("/:id", supplierH.Deactivate)
		}

		// Inventory ledger and alerts
		inv := admin.Group("/inventory")
		{
			inv.POST("/stock-changes", middleware.RequirePermission(middleware.PermInventoryWrite), inventoryH.RecordStockChange)
			inv.GET("/movements", middleware.RequirePermission(middleware.PermInventoryView), inventoryH.ListMovements)
			inv.GET("/alerts", middleware.RequirePermission(middleware.PermInventoryView), inventoryH.ListAlerts)
			inv.POST("/alerts", middleware.RequirePermission(middleware.PermInventoryWrite), inventoryH.CreateAlert)
			inv.PUT("/alerts/:product_id", middleware.RequirePermission(middleware.PermInventoryWrite), inventoryH.UpdateAlert)

			inv.GET("/reports", middleware.RequirePermission(middleware.PermAnalyticsView), reportH.Get)
			inv.GET("/reports/valuation/export", middleware.RequirePermission(middleware.PermAnalyticsView), reportH.ExportValuation)
		}

		// Purchase orders
		po := admin.Group("/purchase-orders", middleware.RequirePermission(middleware.PermInventoryWrite))
		{
			po.POST("", purchaseH.Create)
			po.GET("", purchaseH.List)
			po.GET("/:id", purchaseH.GetByID)
			po.POST("/:id/receive", purchaseH.Receive)
		}

		// Checkout configuration — managers may read, only admins change it
		admin.GET("/checkout-settings", middleware.RequirePermission(middleware.PermSettingsView), checkoutH.Get)
		settings := admin.Group("/checkout-settings", middleware.RequirePermission(middleware.PermSettingsWrite))
		{
			settings.POST("", checkoutH.Update)
			settings.DELETE("", checkoutH.Reset)
		}

		// User management — superadmin/admin only
		users := admin.Group("/users", middleware.RequireRole("superadmin", "admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
