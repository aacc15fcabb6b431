// Package app assembles the content portal's dependencies from configuration
// for the API, worker and CLI binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"contentportal/internal/adapter/repo"
	"contentportal/internal/automation"
	"contentportal/internal/content"
	"contentportal/internal/events"
	"contentportal/internal/infra"
	"contentportal/internal/tasks"
	"contentportal/internal/videoservice"
)

// Options selects the optional parts of the runtime.
type Options struct {
	// Migrate creates the record schema after connecting.
	Migrate bool

	// ScheduleWatches enqueues a background watch for each processing video.
	// Requires REDIS_URL.
	ScheduleWatches bool
}

type Runtime struct {
	Config     *infra.Config
	Logger     *infra.Logger
	Store      *repo.Store
	Automation *automation.Client
	Videos     *videoservice.Client
	Content    *content.Service

	redis *redis.Client
	queue *asynq.Client
}

// New connects the store and optional Redis services and builds the content
// service. Close must be called on the returned runtime.
func New(ctx context.Context, cfg *infra.Config, logger *infra.Logger, opts Options) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	store, err := repo.OpenStore(ctx, cfg, *logger)
	if err != nil {
		return nil, err
	}
	rt.Store = store

	if opts.Migrate {
		if err := store.Repo.Migrate(ctx); err != nil {
			rt.Close()
			return nil, err
		}
	}

	rt.Automation, err = automation.NewClient(automation.Options{
		WebhookURL:     cfg.WebhookURL,
		PollInterval:   cfg.WebhookPollEvery,
		PollTimeout:    cfg.WebhookPollLimit,
		RequestTimeout: cfg.WebhookReqTimeout,
		Logger:         logger,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	if !rt.Automation.Configured() {
		logger.Warn().Msg("N8N_WEBHOOK_URL is not set; content generation requests will fail")
	}

	rt.Videos, err = videoservice.NewClient(videoservice.Options{BaseURL: cfg.VideoServiceURL, Logger: logger})
	if err != nil {
		rt.Close()
		return nil, err
	}

	svcOpts := content.Options{
		Repo:                 store.Repo,
		Automation:           rt.Automation,
		Videos:               rt.Videos,
		Logger:               logger,
		VideoPollInterval:    cfg.VideoPollInterval,
		VideoPollMaxAttempts: cfg.VideoPollMaxAttempts,
	}

	if cfg.RedisURL != "" {
		rt.redis, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		svcOpts.Events = events.NewRedisPublisher(rt.redis)
	}

	if opts.ScheduleWatches {
		if cfg.RedisURL == "" {
			logger.Info().Msg("REDIS_URL is not set; processing videos will not be watched in the background")
		} else {
			connOpt, err := tasks.ParseRedisURL(cfg.RedisURL)
			if err != nil {
				rt.Close()
				return nil, err
			}
			rt.queue = asynq.NewClient(connOpt)
			svcOpts.Watches = tasks.NewEnqueuer(rt.queue, WatchTimeout(cfg), logger)
		}
	}

	rt.Content, err = content.NewService(svcOpts)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("build content service: %w", err)
	}
	return rt, nil
}

// WatchTimeout bounds a whole background watch: every attempt plus a margin
// for the status calls themselves.
func WatchTimeout(cfg *infra.Config) time.Duration {
	return time.Duration(cfg.VideoPollMaxAttempts)*cfg.VideoPollInterval + time.Minute
}

// Close releases every connection held by the runtime.
func (rt *Runtime) Close() {
	if rt.queue != nil {
		if err := rt.queue.Close(); err != nil {
			rt.Logger.Warn().Err(err).Msg("close task queue client")
		}
	}
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			rt.Logger.Warn().Err(err).Msg("close redis client")
		}
	}
	if rt.Store != nil {
		rt.Store.Close()
	}
}
