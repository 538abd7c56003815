package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/adapter/auth"
	"github.com/freshmart/grocery-api/internal/adapter/handler"
	"github.com/freshmart/grocery-api/internal/adapter/ratelimit"
	"github.com/freshmart/grocery-api/internal/adapter/storage"
	"github.com/freshmart/grocery-api/internal/config"
	"github.com/freshmart/grocery-api/internal/core/service"
	"github.com/freshmart/grocery-api/internal/port"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsProduction() {
		logger = logger.Level(zerolog.InfoLevel)
	} else {
		logger = logger.Level(zerolog.DebugLevel)
	}
	logger.Info().Str("environment", cfg.Environment).Msg("starting grocery store api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("open mysql")
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping mysql")
	}
	logger.Info().Msg("connected to mysql")

	store := storage.NewMySQLAdapter(db)
	if err := store.InitSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("init schema")
	}
	if err := store.Seed(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed store")
	}

	var limiter port.RateLimiter
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
		limiter = ratelimit.NewFixedWindow(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow())
		logger.Info().Msg("connected to redis, rate limiting enabled")
	}

	tokenMaker, err := auth.NewJWTMaker(cfg.TokenSecret, cfg.TokenDuration())
	if err != nil {
		logger.Fatal().Err(err).Msg("init token maker")
	}

	catalogSvc := service.NewCatalogService(store, logger)
	customerSvc := service.NewCustomerService(store, logger)
	orderSvc := service.NewOrderService(store, logger)
	authSvc := service.NewAuthService(store, tokenMaker, logger)

	server := handler.NewServer(
		catalogSvc, customerSvc, orderSvc, authSvc, store,
		logger, cfg.Environment, cfg.IsProduction(),
	)
	router := handler.NewRouter(server, authSvc, limiter, cfg.CORSOriginList(), logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}

	if rdb != nil {
		rdb.Close()
	}
	db.Close()
	logger.Info().Msg("connections closed")
}
