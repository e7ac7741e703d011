package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/config"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/handler"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/metrics"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/repository/filestore"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/repository/memory"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/repository/postgres"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/repository/storage"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
)

const sessionPurgeInterval = 15 * time.Minute

// repositories groups the storage backends selected by STORAGE_DRIVER
type repositories struct {
	users        domain.UserRepository
	categories   domain.CategoryRepository
	transactions domain.TransactionRepository
	templates    domain.RecurringTemplateRepository
	close        func()
}

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open storage")
	}
	defer repos.close()

	tokens, err := service.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token manager")
	}

	var backupStore domain.BackupStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3BackupStore(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.S3.Bucket).Msg("Failed to initialize S3 backup store")
		}
		backupStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("S3 backups enabled")
	} else {
		log.Info().Msg("S3 backups disabled")
	}

	clock := util.SystemClock{}

	// Per-IP throttle on the public auth endpoints and per-profile throttle on PIN attempts
	ipLimiter := middleware.NewRateLimiterWithConfig(cfg.LoginRatePerMinute*3, cfg.LoginRatePerMinute)
	defer ipLimiter.Stop()
	pinLimiter := middleware.NewRateLimiterWithConfig(cfg.LoginRatePerMinute, cfg.LoginRatePerMinute/2+1)
	defer pinLimiter.Stop()

	// Initialize services
	categoryService := service.NewCategoryService(repos.categories, repos.transactions, repos.templates, clock)
	authService := service.NewAuthService(repos.users, memory.NewSessionStore(), tokens, categoryService, pinLimiter, clock)
	transactionService := service.NewTransactionService(repos.transactions, repos.categories, clock)
	recurringService := service.NewRecurringService(repos.users, repos.templates, repos.categories, clock, log.Logger, service.RecurringServiceConfig{
		CatchUp: cfg.Recurring.CatchUp,
	})
	statsService := service.NewStatsService(repos.transactions, repos.categories, repos.templates, clock)
	backupService := service.NewBackupService(repos.users, repos.categories, repos.transactions, repos.templates, backupStore, clock)

	// WebSocket hub doubles as the event publisher
	hub := websocket.NewHub()
	categoryService.SetEventPublisher(hub)
	transactionService.SetEventPublisher(hub)
	recurringService.SetEventPublisher(hub)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	recurringHandler := handler.NewRecurringHandler(recurringService)
	statsHandler := handler.NewStatsHandler(statsService)
	backupHandler := handler.NewBackupHandler(backupService)
	wsHandler := handler.NewWebSocketHandler(hub, websocket.NewSessionTokenValidator(authService), cfg.CORSOrigins)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.SchedulerTokenHeader},
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(metrics.HTTPMiddleware())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "storage": cfg.StorageDriver})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api/openapi.json", handler.ServeOpenAPI3Spec)

	// Live updates
	e.GET("/ws", wsHandler.HandleWS)

	// Register API routes
	handler.RegisterRoutes(
		e,
		authMiddleware,
		ipLimiter,
		cfg.SchedulerToken,
		authHandler,
		categoryHandler,
		transactionHandler,
		recurringHandler,
		statsHandler,
		backupHandler,
	)

	if cfg.SchedulerToken == "" {
		log.Warn().Msg("SCHEDULER_TOKEN not set, /recurring/process-due is disabled")
	}

	var worker *service.RecurringWorker
	if cfg.Recurring.WorkerEnabled {
		worker = service.NewRecurringWorker(recurringService, log.Logger, service.RecurringWorkerConfig{
			Interval: cfg.Recurring.Interval,
		})
		worker.Start(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		purgeSessions(gctx, authService)
		return nil
	})

	// Graceful shutdown on signal or server failure
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		if worker != nil {
			worker.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("Server exited")
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Connected to database")
		return &repositories{
			users:        postgres.NewUserRepository(pool),
			categories:   postgres.NewCategoryRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			templates:    postgres.NewRecurringTemplateRepository(pool),
			close:        pool.Close,
		}, nil
	default:
		store, err := filestore.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", store.Dir()).Msg("Using file storage")
		return &repositories{
			users:        filestore.NewUserRepository(store),
			categories:   filestore.NewCategoryRepository(store),
			transactions: filestore.NewTransactionRepository(store),
			templates:    filestore.NewRecurringTemplateRepository(store),
			close:        func() {},
		}, nil
	}
}

// purgeSessions drops expired sessions until ctx is cancelled
func purgeSessions(ctx context.Context, authService *service.AuthService) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authService.PurgeExpiredSessions(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Failed to purge expired sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("purged", n).Msg("Purged expired sessions")
			}
		}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
