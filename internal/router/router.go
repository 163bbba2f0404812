package router

import (
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/config"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/handler"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/middleware"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/service"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/ReadStore ← DB/Mongo.
//
// Authorization is deliberately absent: an upstream gateway gates the
// mutating routes, and this core assumes an already-authorized caller.
func New(cfg *config.Config, db *gorm.DB, store readstore.ReadStore, notifier service.SyncNotifier) *gin.Engine {
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
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// ── Sync path ────────────────────────────────────────────────────────────
	projector := sync.NewProjector(store, categoryRepo)
	reconciler := sync.NewReconciler(productRepo, store, projector, cfg.ReconcileBatchSize)

	// ── Services ─────────────────────────────────────────────────────────────
	categorySvc := service.NewCategoryService(categoryRepo, productRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, ledgerRepo, projector, notifier)
	stockSvc := service.NewStockService(productRepo, ledgerRepo, projector, notifier)
	querySvc := service.NewQueryService(productRepo, store)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc, stockSvc)
	inventoryH := handler.NewInventoryHandler(querySvc, stockSvc)
	syncH := handler.NewSyncHandler(reconciler)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, store))

	v1 := r.Group("/v1")
	{
		v1.POST("/categories", categoriesH.Create)
		v1.GET("/categories", categoriesH.List)
		v1.PUT("/categories/:id", categoriesH.Update)
		v1.DELETE("/categories/:id", categoriesH.Delete)

		v1.POST("/products", productsH.Create)
		v1.GET("/products", productsH.List)
		v1.GET("/products/:sku", productsH.GetBySKU)
		v1.DELETE("/products/:id", productsH.Delete)
		v1.POST("/products/:id/stock", productsH.ApplyStockChange)

		v1.GET("/inventory/sql", inventoryH.SQLList)
		v1.GET("/inventory/nosql", inventoryH.NoSQLList)
		v1.GET("/inventory/compare", inventoryH.Compare)
		v1.GET("/inventory/stats", inventoryH.Stats)
		v1.GET("/inventory/transactions", inventoryH.Ledger)

		v1.POST("/sync/full", syncH.RunFull)
	}

	return r
}
