package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catalogapi/internal/caching"
	"catalogapi/internal/config"
	"catalogapi/internal/handlers"
	"catalogapi/internal/jobs/background"
	"catalogapi/internal/logger"
	"catalogapi/internal/middleware"
	"catalogapi/internal/repositories"
	"catalogapi/internal/services"
	"catalogapi/internal/storage"
	"catalogapi/pkg/database"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close(context.Background())
	log.Infow("stores opened", "stores", stores.String())

	blobs, err := openBlobStore(ctx, cfg, stores)
	if err != nil {
		return err
	}

	categoryRepo := repositories.NewCategoryRepo(stores.DB)
	productRepo := repositories.NewProductRepo(stores.DB)
	adminRepo := repositories.NewAdminRepo(stores.Pool)
	pendingRepo := repositories.NewPendingDeletionRepo(stores.Pool)

	cache := caching.NewNoopCache()
	var resolver services.CategoryResolver = services.NewCategoryResolver(categoryRepo, log)
	if stores.Redis != nil {
		cache = caching.NewRedisCacheService(stores.Redis, cfg.CategoryCacheTTL)
		resolver = services.NewCachedCategoryResolver(resolver, cache, log)
	}

	serializer := services.NewSerializer(resolver)
	cascade := services.NewCascadeController(blobs, pendingRepo, log)
	productSvc := services.NewProductService(productRepo, categoryRepo, blobs, cascade, serializer, log)
	categorySvc := services.NewCategoryService(categoryRepo, productRepo, blobs, cascade, cache, serializer, cfg.CategoryDeletePolicy, log)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret, cfg.JWTTTL)

	checks := map[string]handlers.Pinger{
		"mongo":    handlers.PingFunc(func(ctx context.Context) error { return stores.Mongo.Ping(ctx, nil) }),
		"postgres": handlers.PingFunc(func(ctx context.Context) error { return stores.Pool.Ping(ctx) }),
		"storage":  blobs,
	}
	if stores.Redis != nil {
		checks["redis"] = cache
	}

	e := newEcho(cfg, log)
	handlers.RegisterRoutes(e, handlers.Handlers{
		Catalog:    handlers.NewCatalogHandlers(productSvc, categorySvc, cfg.BaseURL, cfg.StoreTimeout, log),
		Images:     handlers.NewImageHandlers(blobs, log),
		Categories: handlers.NewCategoryHandlers(categorySvc, cfg.StoreTimeout, log),
		Products:   handlers.NewProductHandlers(productSvc, cfg.StoreTimeout, log),
		Auth:       handlers.NewAuthHandlers(authSvc, cfg.StoreTimeout, log),
		Health:     handlers.NewHealthHandlers(checks, cfg.StoreTimeout, log),
	},
		middleware.AdminJWT(cfg.JWTSecret),
		middleware.RequireAdmin(adminRepo),
		middleware.AdminAudit(log),
	)

	scheduler, err := background.NewJobScheduler(cascade, cfg.BlobRetryInterval, cfg.StoreTimeout, log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warnw("stopping scheduler", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("catalog server starting", "version", version, "port", cfg.Port, "blob_backend", cfg.BlobBackend)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openBlobStore(ctx context.Context, cfg *config.Config, stores *database.Stores) (storage.BlobStore, error) {
	if cfg.BlobBackend != config.BlobBackendMinio {
		return storage.NewGridFSStore(stores.DB, cfg.BlobBucket), nil
	}
	store, err := storage.NewMinioStore(storage.MinioOptions{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Region:    cfg.MinioRegion,
		Bucket:    cfg.BlobBucket,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucketExists(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func newEcho(cfg *config.Config, log *zap.SugaredLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	return e
}
