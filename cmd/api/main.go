// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/adlib/internal/admin"
	"github.com/carterperez-dev/adlib/internal/analytics"
	"github.com/carterperez-dev/adlib/internal/auth"
	"github.com/carterperez-dev/adlib/internal/config"
	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/health"
	"github.com/carterperez-dev/adlib/internal/library"
	"github.com/carterperez-dev/adlib/internal/middleware"
	"github.com/carterperez-dev/adlib/internal/premium"
	"github.com/carterperez-dev/adlib/internal/server"
	"github.com/carterperez-dev/adlib/internal/store"
	"github.com/carterperez-dev/adlib/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seed := flag.Bool("seed", false, "seed the admin account and exit")
	flag.Parse()

	if err := run(*configPath, *seed); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, seed bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	st, err := store.New(cfg.Store.Dir)
	if err != nil {
		return err
	}
	if err := st.EnsureCollections(); err != nil {
		return err
	}
	logger.Info("store initialized", "dir", st.Dir())

	if seed {
		return seedAdmin(ctx, st, cfg.Seed, logger)
	}

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	var redis *core.Redis
	if cfg.RateLimit.Enabled {
		redis, err = core.NewRedis(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			return err
		}
		logger.Info("redis connected")
	}

	jwtManager, err := auth.NewJWTManager(cfg.Session, cfg.App.Environment)
	if err != nil {
		return err
	}
	logger.Info("session manager initialized",
		"algorithm", "HS256",
		"token_expire", cfg.Session.TokenExpire,
	)

	recorder := analytics.NewRecorder(st)

	userRepo := user.NewRepository(st)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc, recorder)
	// Cookies are secure-flagged everywhere except local development, so
	// staging over HTTPS behaves like production.
	authHandler := auth.NewHandler(authSvc, !cfg.IsDevelopment())

	libraryRepo := library.NewRepository(st)
	librarySvc := library.NewService(libraryRepo, recorder)
	libraryHandler := library.NewHandler(librarySvc)

	premiumRepo := premium.NewRepository(st)
	premiumSvc := premium.NewService(premiumRepo, userSvc, recorder)
	premiumHandler := premium.NewHandler(premiumSvc)

	analyticsHandler := analytics.NewHandler(recorder, userSvc)

	var redisChecker health.Checker
	if redis != nil {
		redisChecker = redis
	}
	healthHandler := health.NewHandler(st, redisChecker)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		StoreStats: st.Stats,
		StorePing:  st.Ping,
		RedisPing:  redisPing(redis),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.Gate(jwtManager))

	// After the gate so the limiter can key and scale by session claims.
	if redis != nil {
		router.Use(
			middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
				Limit: middleware.PerWindow(
					cfg.RateLimit.Requests,
					cfg.RateLimit.Burst,
					cfg.RateLimit.Window,
				),
				FailOpen: true,
			}).Handler,
		)
	}

	healthHandler.RegisterRoutes(router)

	adminOnly := middleware.RequireAdmin

	authHandler.RegisterRoutes(router)
	libraryHandler.RegisterRoutes(router)
	premiumHandler.RegisterRoutes(router)

	userHandler.RegisterAdminRoutes(router, adminOnly)
	libraryHandler.RegisterAdminRoutes(router, adminOnly)
	premiumHandler.RegisterAdminRoutes(router, adminOnly)
	analyticsHandler.RegisterAdminRoutes(router, adminOnly)
	adminHandler.RegisterRoutes(router, adminOnly)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if redis != nil {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

// seedAdmin creates the initial admin account. Running it twice is a no-op.
func seedAdmin(
	ctx context.Context,
	st *store.Store,
	cfg config.SeedConfig,
	logger *slog.Logger,
) error {
	if cfg.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required to seed")
	}

	hash, err := core.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	repo := user.NewRepository(st)
	admin := &user.User{
		ID:           uuid.New().String(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Name:         cfg.AdminName,
		Role:         user.RoleAdmin,
		IsPremium:    true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			logger.Info("admin account already exists", "email", cfg.AdminEmail)
			return nil
		}
		return err
	}

	logger.Info("admin account created", "email", cfg.AdminEmail)
	return nil
}

func redisPing(r *core.Redis) func(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.Ping
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
