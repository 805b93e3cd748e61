// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/adjustments"
	"pharmacore/internal/domain/analytics"
	"pharmacore/internal/domain/auth"
	"pharmacore/internal/domain/catalogs/customer"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/domain/notifications"
	"pharmacore/internal/domain/orders"
	"pharmacore/internal/domain/purchases"
	"pharmacore/internal/infrastructure/cache"
	"pharmacore/internal/infrastructure/http/v1/handlers"
	"pharmacore/internal/infrastructure/http/v1/middleware"
	"pharmacore/internal/infrastructure/storage/postgres"
	"pharmacore/internal/infrastructure/storage/postgres/auth_repo"
	"pharmacore/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmacore/internal/infrastructure/storage/postgres/document_repo"
	"pharmacore/internal/infrastructure/storage/postgres/inventory_repo"
	"pharmacore/internal/infrastructure/storage/postgres/notification_repo"
	"pharmacore/internal/infrastructure/storage/postgres/register_repo"
	"pharmacore/pkg/logger"
	"pharmacore/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager

	Logger *logger.Logger

	// CacheStore backs analytics caching (Redis in production,
	// in-memory fallback for development).
	CacheStore cache.Store

	// TokenService issues and verifies JWTs.
	TokenService *auth.TokenService

	// RuleEngine holds compiled custom alert rules; may be nil.
	RuleEngine *notifications.RuleEngine

	Version string
}

// auditAdapter bridges the typed audit service to the order pipeline.
type auditAdapter struct {
	svc *postgres.AuditService
}

func (a *auditAdapter) LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error {
	return a.svc.LogChange(ctx, entityType, entityID, postgres.AuditAction(action), changes)
}

// demandAdapter feeds cached analytics figures into order rule evaluation.
type demandAdapter struct {
	svc *analytics.Service
}

func (a *demandAdapter) DemandFigures(ctx context.Context, productID id.ID) (orders.DemandFigures, error) {
	data, err := a.svc.ForProduct(ctx, productID)
	if err != nil {
		return orders.DemandFigures{}, err
	}
	return orders.DemandFigures{
		AvgMonthlySales:   data.AverageMonthlySales,
		DemandVariability: data.DemandVariability,
		ReorderPoint:      data.ReorderPoint,
	}, nil
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	healthHandler.RegisterRoutes(router.Group("/health"))

	// Shared infrastructure
	txManager := cfg.TxManager
	num := numerator.New(func(ctx context.Context) numerator.Querier {
		return txManager.GetQuerier(ctx)
	})

	auditSvc, err := postgres.NewAuditService(txManager)
	if err != nil {
		return nil, err
	}

	// Repositories
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	batchRepo := inventory_repo.NewBatchRepo(txManager)
	orderRepo := document_repo.NewOrderRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	adjustmentRepo := document_repo.NewAdjustmentRepo(txManager)
	salesRepo := register_repo.NewSalesRepo(txManager)
	notificationRepo := notification_repo.NewNotificationRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// Services
	productSvc := product.NewService(productRepo, txManager)
	customerSvc := customer.NewService(customerRepo, txManager)
	inventorySvc := inventory.NewService(batchRepo, txManager)
	notificationSvc := notifications.NewService(notificationRepo, cfg.RuleEngine)
	analyticsSvc := analytics.NewService(productRepo, salesRepo, cfg.CacheStore)
	orderSvc := orders.NewService(
		orderRepo, productRepo, customerRepo, inventorySvc,
		salesRepo, notificationSvc, num, txManager,
		&auditAdapter{svc: auditSvc},
		&demandAdapter{svc: analyticsSvc},
	)
	purchaseSvc := purchases.NewService(purchaseRepo, productRepo, inventorySvc, num, txManager)
	adjustmentSvc := adjustments.NewService(adjustmentRepo, productRepo, inventorySvc, notificationSvc, num, txManager)
	authSvc := auth.NewService(userRepo, cfg.TokenService)

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		// Auth
		authHandler := handlers.NewAuthHandler(base, authSvc)
		publicAuth := api.Group("/auth")
		protectedAuth := api.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.TokenService))
		protectedAuth.Use(middleware.RequireRole(auth.RoleAdmin))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		// Protected endpoints
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.TokenService))

		handlers.NewProductHandler(base, productSvc).
			RegisterRoutes(protected.Group("/products"))
		handlers.NewCustomerHandler(base, customerSvc).
			RegisterRoutes(protected.Group("/customers"))
		handlers.NewInventoryHandler(base, inventorySvc).
			RegisterRoutes(protected.Group("/inventory"))
		handlers.NewOrderHandler(base, orderSvc).
			RegisterRoutes(protected.Group("/orders"))
		handlers.NewPurchaseHandler(base, purchaseSvc).
			RegisterRoutes(protected.Group("/purchases"))
		handlers.NewAdjustmentHandler(base, adjustmentSvc).
			RegisterRoutes(protected.Group("/adjustments"))
		handlers.NewNotificationHandler(base, notificationSvc).
			RegisterRoutes(protected.Group("/notifications"))
		handlers.NewAnalyticsHandler(base, analyticsSvc).
			RegisterRoutes(protected.Group("/analytics"))
	}

	return router, nil
}
