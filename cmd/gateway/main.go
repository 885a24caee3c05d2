package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoporbit/console-gateway/internal/api"
	"github.com/shoporbit/console-gateway/internal/api/middleware"
	"github.com/shoporbit/console-gateway/internal/core/service"
	"github.com/shoporbit/console-gateway/internal/infrastructure/db/mongo"
	"github.com/shoporbit/console-gateway/internal/infrastructure/db/redis"
	"github.com/shoporbit/console-gateway/internal/infrastructure/httpclient"
	"github.com/shoporbit/console-gateway/internal/notify"
	"github.com/shoporbit/console-gateway/internal/pkg/config"
	"github.com/shoporbit/console-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	store := service.NewSlotStore(redis.NewSlotStorage(rdb, cfg.SessionTTL), log)
	repo := mongo.NewPrincipalRepository(db)
	sessions := service.NewSessionService(
		store,
		repo,
		service.FixedCodeVerifier(cfg.TwoFactorCode),
		cfg.JWTSecret,
		cfg.SessionTTL,
		log,
	)

	notifier := notify.NewCenter(cfg.ToastTTL, log)
	defer notifier.Close()

	upstream := httpclient.New(httpclient.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Token: func(ctx context.Context) string {
			return sessions.Token(ctx, middleware.SessionIDFromContext(ctx))
		},
	}, notifier, log)

	e := api.NewRouter(api.Dependencies{
		Sessions:  sessions,
		Notifier:  notifier,
		Upstream:  upstream,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("console gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
