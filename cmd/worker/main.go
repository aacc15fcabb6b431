package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"contentportal/internal/app"
	"contentportal/internal/infra"
	"contentportal/internal/tasks"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.RedisURL == "" {
		logger.Fatal().Msg("worker: REDIS_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.New(ctx, cfg, &logger, app.Options{Migrate: true})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to initialize")
	}
	defer rt.Close()

	srv, err := tasks.NewServer(cfg.RedisURL, cfg.WorkerConcurrency, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure task server")
	}
	mux := tasks.NewServeMux(tasks.NewVideoWatchHandler(rt.Content, &logger))

	if err := srv.Start(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to start")
	}
	logger.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("worker: started")

	<-ctx.Done()
	srv.Shutdown()
	logger.Info().Msg("worker: stopped")
}
