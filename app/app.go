package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"luxemarket/app/controller"
	"luxemarket/app/router"
	"luxemarket/colors"
	"luxemarket/config"
	"luxemarket/db"
	"luxemarket/events"
	"luxemarket/pricing"
	"luxemarket/repository"
	"luxemarket/service"
	"luxemarket/storage"
)

// openStorage selects the key-value backend named by cfg.StorageDriver
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		if err := db.InitSQLite(ctx, cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store := storage.NewSQLStore(db.DB, storage.DialectSQLite)
		return store, store.EnsureSchema(ctx)
	case config.DriverPostgres:
		if err := db.InitPostgres(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store := storage.NewSQLStore(db.DB, storage.DialectPostgres)
		return store, store.EnsureSchema(ctx)
	default:
		log.Printf("⚠️  Using in-memory storage: data is lost on restart")
		return storage.NewMemoryStore(), nil
	}
}

// Initialize wires storage, repositories, services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg, store)
}

// Build wires the application over an already opened store
func Build(ctx context.Context, cfg *config.Config, store storage.Storage) (http.Handler, error) {
	bus := events.NewBus()
	resolver := colors.NewResolver()
	parser := colors.NewParser(resolver)
	engine := pricing.NewEngine(cfg.DealTTL)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(store, bus)
	productRepo := repository.NewProductRepository(store, categoryRepo, resolver, bus)
	dealRepo := repository.NewDealRepository(store, engine, bus)
	homepageRepo := repository.NewHomepageRepository(store, bus)
	watchlistRepo := repository.NewWatchlistRepository(store, bus)
	presetRepo := repository.NewPresetRepository(store, parser, resolver, bus)
	cartRepo := repository.NewCartRepository(store, bus)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)

	// Saved presets teach the parser their modes and the resolver their custom names
	if err := presetRepo.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load color presets: %w", err)
	}

	// Initialize services
	storefront := service.NewStorefrontService(productRepo, dealRepo, homepageRepo, watchlistRepo, engine)
	checkout := service.NewCheckoutService(productRepo, dealRepo, cartRepo, orderRepo, userRepo, engine)
	catalog := service.NewCatalogService(productRepo, dealRepo, engine, parser, bus, cfg.BaseURL)
	images := service.NewImageStore(cfg.UploadDir, router.UploadsPrefix)

	var syncService service.SyncServiceInterface
	var downloadService service.DownloadServiceInterface
	if cfg.CredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		syncService = service.NewSyncService(driveService, productRepo)
		downloadService = service.NewDownloadService(driveService, productRepo, images)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, variant image sync disabled")
	}

	sessions := controller.NewSessions(cfg.SessionKey, cfg.CookieSecure)

	// Create controllers
	controllers := &router.Controllers{
		Color:     controller.NewColorController(resolver, parser, presetRepo),
		Product:   controller.NewProductController(productRepo, storefront, images),
		Category:  controller.NewCategoryController(categoryRepo),
		Deal:      controller.NewDealController(storefront, dealRepo),
		Homepage:  controller.NewHomepageController(storefront, homepageRepo),
		Watchlist: controller.NewWatchlistController(storefront, watchlistRepo),
		Cart:      controller.NewCartController(checkout, sessions),
		Session:   controller.NewSessionController(userRepo, sessions),
		Catalog:   controller.NewCatalogController(catalog),
		Download:  controller.NewDownloadController(syncService, downloadService, cfg.VariantFolderID),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers, cfg.UploadDir)

	log.Printf("✓ Application initialized (storage=%s)", cfg.StorageDriver)
	return mux, nil
}
