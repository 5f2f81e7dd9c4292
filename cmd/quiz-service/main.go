package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizmesh/quiz-platform/internal/api"
	"github.com/quizmesh/quiz-platform/internal/infrastructure/config"
	mongodb "github.com/quizmesh/quiz-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/quizmesh/quiz-platform/internal/infrastructure/db/redis"
	"github.com/quizmesh/quiz-platform/internal/infrastructure/provider"
	"github.com/quizmesh/quiz-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// The cache is an optimisation; the service runs without Redis.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, question view cache disabled")
		rdb = nil
	} else {
		defer func() {
			_ = rdb.Close()
		}()
	}

	questionProvider := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout, log)

	e := api.NewQuizRouter(db, rdb, questionProvider, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("quiz service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
