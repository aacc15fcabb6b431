// Package tasks defines the background tasks run by cmd/worker.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"contentportal/internal/content"
	"contentportal/internal/infra"
)

// TypeVideoWatch identifies the task that follows a video render until it is ready.
const TypeVideoWatch = "video:watch"

// QueueDefault is the only queue the portal uses.
const QueueDefault = "default"

// VideoWatchPayload identifies the record and the render to follow.
type VideoWatchPayload struct {
	RecordID string `json:"recordId"`
	VideoID  string `json:"videoId"`
}

// NewVideoWatchTask builds a video:watch task.
func NewVideoWatchTask(recordID, videoID string) (*asynq.Task, error) {
	payload, err := json.Marshal(VideoWatchPayload{RecordID: recordID, VideoID: videoID})
	if err != nil {
		return nil, fmt.Errorf("encode video watch payload: %w", err)
	}
	return asynq.NewTask(TypeVideoWatch, payload), nil
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer schedules video watches on the Redis-backed queue.
type Enqueuer struct {
	client  taskEnqueuer
	timeout time.Duration
	logger  *infra.Logger
}

// NewEnqueuer creates an Enqueuer. timeout bounds a single watch run and
// should cover the whole attempt budget.
func NewEnqueuer(client *asynq.Client, timeout time.Duration, logger *infra.Logger) *Enqueuer {
	return newEnqueuer(client, timeout, logger)
}

func newEnqueuer(client taskEnqueuer, timeout time.Duration, logger *infra.Logger) *Enqueuer {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Enqueuer{client: client, timeout: timeout, logger: logger}
}

// ScheduleVideoWatch enqueues a watch for the record. A record is watched at
// most once at a time; duplicates are reported as success.
func (e *Enqueuer) ScheduleVideoWatch(ctx context.Context, recordID, videoID string) error {
	task, err := NewVideoWatchTask(recordID, videoID)
	if err != nil {
		return err
	}
	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.TaskID("video-watch:" + recordID),
		asynq.MaxRetry(0),
	}
	if e.timeout > 0 {
		opts = append(opts, asynq.Timeout(e.timeout))
	}
	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		e.logger.Debug().Str("record_id", recordID).Msg("video watch already scheduled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue video watch: %w", err)
	}
	e.logger.Info().Str("record_id", recordID).Str("video_id", videoID).Str("task_id", info.ID).Msg("video watch scheduled")
	return nil
}

// VideoWatcher runs the video status loop for one record.
type VideoWatcher interface {
	WatchVideo(ctx context.Context, recordID, videoID string) error
}

// VideoWatchHandler processes video:watch tasks.
type VideoWatchHandler struct {
	watcher VideoWatcher
	logger  *infra.Logger
}

func NewVideoWatchHandler(watcher VideoWatcher, logger *infra.Logger) *VideoWatchHandler {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &VideoWatchHandler{watcher: watcher, logger: logger}
}

// ProcessTask implements asynq.Handler. A render still processing after the
// attempt budget completes the task; it is not retried.
func (h *VideoWatchHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p VideoWatchPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode video watch payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.RecordID == "" || p.VideoID == "" {
		return fmt.Errorf("video watch payload is incomplete: %w", asynq.SkipRetry)
	}
	err := h.watcher.WatchVideo(ctx, p.RecordID, p.VideoID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, content.ErrStillProcessing), errors.Is(err, content.ErrVideoFailed):
		h.logger.Info().Err(err).Str("record_id", p.RecordID).Msg("video watch finished without a ready video")
		return nil
	default:
		return fmt.Errorf("watch video %s: %w", p.VideoID, err)
	}
}

// NewServeMux registers every task handler of the worker.
func NewServeMux(videoWatch *VideoWatchHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeVideoWatch, videoWatch)
	return mux
}
