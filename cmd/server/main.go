package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/api/handler"
	"github.com/aakash-73/Se2-Project-v1/internal/api/middleware"
	"github.com/aakash-73/Se2-Project-v1/internal/api/router"
	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/catalog"
	"github.com/aakash-73/Se2-Project-v1/internal/service"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	"github.com/aakash-73/Se2-Project-v1/pkg/jwt"
	applogger "github.com/aakash-73/Se2-Project-v1/pkg/logger"
	"github.com/aakash-73/Se2-Project-v1/pkg/metrics"
	"github.com/aakash-73/Se2-Project-v1/pkg/redis"
)

func main() {
	// 1. .env is optional; real environment variables win
	_ = godotenv.Load()

	// 2. config
	cfg, err := config.Load(os.Getenv("SYLLABUS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 3. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("portal starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	m := metrics.New()

	// 4. session store: Redis when reachable, in-process otherwise
	var (
		kv      session.KV
		limiter middleware.RateLimiter
		rdb     *redis.Client
	)
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, sessions kept in memory and rate limiting disabled", zap.Error(err))
		mem := session.NewMemoryKV()
		kv = mem
		go purgeLoop(ctx, mem, cfg.Catalog.SweepInterval, logger)
	} else {
		kv = rdb
		limiter = rdb
	}
	store := session.NewStore(kv, cfg.Auth.SessionTTL)

	// 5. catalog caches
	catalogs := catalog.NewRegistry(cfg.Catalog.IdleTTL, logger)
	go catalogs.Run(ctx, cfg.Catalog.SweepInterval)

	// 6. wiring: backend → service → handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	be := backend.New(backend.NewClient(&cfg.Backend, m, logger))
	svc := service.NewService(cfg, be, store, catalogs, jwtMgr, logger)
	h := handler.NewHandler(cfg, svc)

	// 7. router
	engine := router.Setup(cfg, h, router.Deps{
		JWT:     jwtMgr,
		Store:   store,
		Limiter: limiter,
		Metrics: m,
		Logger:  logger,
	})

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Backend.ChatTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}

// purgeLoop drops expired in-memory session keys
func purgeLoop(ctx context.Context, mem *session.MemoryKV, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Purge(); n > 0 {
				logger.Debug("purged expired session keys", zap.Int("count", n))
			}
		}
	}
}
