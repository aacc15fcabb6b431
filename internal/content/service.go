// Package content orchestrates content briefs: it validates input, builds the
// automation prompt, calls the automation endpoint and keeps the history of
// records in sync with the outcome.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contentportal/internal/automation"
	"contentportal/internal/domain"
	"contentportal/internal/events"
	"contentportal/internal/infra"
	"contentportal/internal/videoservice"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 50

	DefaultVideoPollInterval    = 5 * time.Second
	DefaultVideoPollMaxAttempts = 60
)

var (
	// ErrStillProcessing means the watch gave up while the render was still
	// running. The record stays processing and can be checked later.
	ErrStillProcessing = errors.New("video is still processing")
	// ErrVideoFailed means the video service reported the render as failed.
	ErrVideoFailed = errors.New("video render failed")
)

// Automation submits briefs to the automation endpoint.
type Automation interface {
	Trigger(ctx context.Context, req automation.Request) (*automation.Response, error)
}

// VideoService reads render state and files from the video service.
type VideoService interface {
	Status(ctx context.Context, videoID string) (*videoservice.Status, error)
	Download(ctx context.Context, videoID string) (*videoservice.Video, error)
}

// WatchScheduler hands a processing video to a background watcher.
type WatchScheduler interface {
	ScheduleVideoWatch(ctx context.Context, recordID, videoID string) error
}

// Options wires the service dependencies. Events and Watches are optional.
type Options struct {
	Repo                 domain.ContentRepository
	Automation           Automation
	Videos               VideoService
	Events               events.Publisher
	Watches              WatchScheduler
	Logger               *infra.Logger
	VideoPollInterval    time.Duration
	VideoPollMaxAttempts int
}

// Service implements the content operations exposed by the API and CLI.
type Service struct {
	repo         domain.ContentRepository
	automation   Automation
	videos       VideoService
	events       events.Publisher
	watches      WatchScheduler
	logger       *infra.Logger
	pollInterval time.Duration
	pollAttempts int
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewService(opts Options) (*Service, error) {
	if opts.Repo == nil {
		return nil, fmt.Errorf("content: repository is required")
	}
	if opts.Automation == nil {
		return nil, fmt.Errorf("content: automation client is required")
	}
	if opts.Videos == nil {
		return nil, fmt.Errorf("content: video service client is required")
	}
	publisher := opts.Events
	if publisher == nil {
		publisher = events.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	interval := opts.VideoPollInterval
	if interval <= 0 {
		interval = DefaultVideoPollInterval
	}
	attempts := opts.VideoPollMaxAttempts
	if attempts <= 0 {
		attempts = DefaultVideoPollMaxAttempts
	}
	return &Service{
		repo:         opts.Repo,
		automation:   opts.Automation,
		videos:       opts.Videos,
		events:       publisher,
		watches:      opts.Watches,
		logger:       logger,
		pollInterval: interval,
		pollAttempts: attempts,
		sleep:        sleepContext,
	}, nil
}

// CreateScript generates a script and stores it as a completed record.
func (s *Service) CreateScript(ctx context.Context, locale string, in ScriptInput) (*domain.ContentRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	prompt := ScriptPrompt(locale, in)
	return s.generate(ctx, domain.ContentKindScript, prompt, map[string]any{"tone": in.Tone})
}

// CreateImage generates an image proposal and stores it as a completed record.
func (s *Service) CreateImage(ctx context.Context, locale string, in ImageInput) (*domain.ContentRecord, error) {
	in, err := in.normalized()
	if err != nil {
		return nil, err
	}
	goals := make([]any, 0, len(in.Goals))
	for _, g := range in.Goals {
		goals = append(goals, g)
	}
	prompt := ImagePrompt(locale, in)
	return s.generate(ctx, domain.ContentKindImage, prompt, map[string]any{"goals": goals})
}

// CreateSentiment runs a sentiment analysis and stores it as a completed record.
func (s *Service) CreateSentiment(ctx context.Context, locale string, in SentimentInput) (*domain.ContentRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, domain.ContentKindSentiment, SentimentPrompt(locale, in), map[string]any{})
}

func (s *Service) generate(ctx context.Context, kind domain.ContentKind, prompt string, metadata map[string]any) (*domain.ContentRecord, error) {
	resp, err := s.automation.Trigger(ctx, automation.Request{Type: kind, Prompt: prompt})
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(kind)).Msg("automation request failed")
		return nil, err
	}
	return s.create(ctx, domain.NewContentRecord{
		Kind:             kind,
		Prompt:           prompt,
		Metadata:         metadata,
		Result:           resp.Result,
		Status:           domain.ContentStatusCompleted,
		AutomationTaskID: resp.TaskID,
	})
}

// CreateVideo requests a short video. A render that is not ready yet is
// stored as processing and handed to the background watcher when available;
// an answer without a video id is stored as failed.
func (s *Service) CreateVideo(ctx context.Context, in VideoInput) (*domain.ContentRecord, error) {
	scenes, cfg, err := in.resolve()
	if err != nil {
		return nil, err
	}
	prompt := VideoPrompt(in.Scenes)
	resp, err := s.automation.Trigger(ctx, automation.Request{
		Type:   domain.ContentKindVideo,
		Prompt: prompt,
		Scenes: scenes,
		Config: &cfg,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(domain.ContentKindVideo)).Msg("automation request failed")
		return nil, err
	}

	videoID := scalarID(resp.Result[domain.ResultKeyVideoID])
	videoStatus, _ := resp.Result[domain.ResultKeyVideoStatus].(string)
	if videoStatus == "" {
		videoStatus = string(domain.VideoStatusProcessing)
	}
	result := map[string]any{domain.ResultKeyVideoStatus: videoStatus}
	status := domain.ContentStatusFailed
	if videoID != "" {
		result[domain.ResultKeyVideoID] = videoID
		status = domain.ContentStatusProcessing
		if videoStatus == string(domain.VideoStatusReady) {
			status = domain.ContentStatusCompleted
		}
	}

	rec, err := s.create(ctx, domain.NewContentRecord{
		Kind:             domain.ContentKindVideo,
		Prompt:           prompt,
		Metadata:         map[string]any{"scenes": scenesMetadata(scenes), "config": configMetadata(cfg)},
		Result:           result,
		Status:           status,
		AutomationTaskID: resp.TaskID,
	})
	if err != nil {
		return nil, err
	}
	if rec.Status == domain.ContentStatusProcessing && s.watches != nil {
		if err := s.watches.ScheduleVideoWatch(ctx, rec.ID, videoID); err != nil {
			s.logger.Warn().Err(err).Str("record_id", rec.ID).Msg("schedule video watch failed")
		}
	}
	return rec, nil
}

// UpdateVideoStatus applies a status report for a video record. Only "ready"
// on a processing record changes it; a repeated "ready" and "processing"
// return the record untouched.
func (s *Service) UpdateVideoStatus(ctx context.Context, id string, videoStatus domain.VideoStatus) (*domain.ContentRecord, error) {
	switch videoStatus {
	case domain.VideoStatusReady:
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.HasVideoState(domain.VideoStatusReady, domain.ContentStatusCompleted) {
			return current, nil
		}
	case domain.VideoStatusProcessing:
		rec, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec.Kind != domain.ContentKindVideo || (rec.Status != domain.ContentStatusProcessing && rec.Status != domain.ContentStatusCompleted) {
			return nil, domain.ErrImmutableRecord
		}
		return rec, nil
	default:
		verr := &domain.ValidationError{}
		verr.Add("videoStatus", domain.ErrInvalidStatus.Error())
		return nil, verr
	}

	rec, err := s.repo.UpdateVideoStatus(ctx, id, domain.VideoStatusReady, domain.ContentStatusCompleted)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.KindUpdated, rec)
	return rec, nil
}

// ListRecent returns the newest records; limit is clamped to [1, 50].
func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.ContentRecord, error) {
	return s.repo.ListRecent(ctx, ClampHistoryLimit(limit))
}

// ClampHistoryLimit bounds a history page size.
func ClampHistoryLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// VideoStatus proxies the render state of videoID.
func (s *Service) VideoStatus(ctx context.Context, videoID string) (*videoservice.Status, error) {
	return s.videos.Status(ctx, videoID)
}

// DownloadVideo opens the rendered file of videoID. Callers close the body.
func (s *Service) DownloadVideo(ctx context.Context, videoID string) (*videoservice.Video, error) {
	return s.videos.Download(ctx, videoID)
}

func (s *Service) create(ctx context.Context, rec domain.NewContentRecord) (*domain.ContentRecord, error) {
	out, err := s.repo.Create(ctx, rec)
	if err != nil {
		s.logger.Error().Err(err).Str("type", string(rec.Kind)).Msg("persist content record failed")
		return nil, err
	}
	s.logger.Info().Str("record_id", out.ID).Str("type", string(out.Kind)).Str("status", string(out.Status)).Msg("content record created")
	s.publish(ctx, events.KindCreated, out)
	return out, nil
}

func (s *Service) publish(ctx context.Context, kind events.Kind, rec *domain.ContentRecord) {
	if err := s.events.Publish(ctx, events.Event{Event: kind, Item: rec}); err != nil {
		s.logger.Warn().Err(err).Str("record_id", rec.ID).Msg("publish record event failed")
	}
}

func scenesMetadata(scenes []automation.Scene) []any {
	out := make([]any, 0, len(scenes))
	for _, sc := range scenes {
		terms := make([]any, 0, len(sc.SearchTerms))
		for _, t := range sc.SearchTerms {
			terms = append(terms, t)
		}
		out = append(out, map[string]any{"text": sc.Text, "searchTerms": terms})
	}
	return out
}

func configMetadata(cfg automation.VideoConfig) map[string]any {
	return map[string]any{
		"paddingBack":            cfg.PaddingBack,
		"music":                  cfg.Music,
		"voice":                  cfg.Voice,
		"captionPosition":        cfg.CaptionPosition,
		"captionBackgroundColor": cfg.CaptionBackgroundColor,
		"orientation":            cfg.Orientation,
	}
}

// scalarID accepts string or numeric identifiers from the automation payload.
func scalarID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
