package content

import (
	"context"
	"time"

	"contentportal/internal/domain"
)

// WatchVideo polls the video service for videoID until it is ready, then marks
// the record completed. It sleeps before every attempt and gives up after the
// attempt budget with ErrStillProcessing; the record stays processing.
// Transient status errors are logged and the loop continues. A failed render
// ends the watch with ErrVideoFailed and leaves the record untouched.
func (s *Service) WatchVideo(ctx context.Context, recordID, videoID string) error {
	log := s.logger.With().Str("record_id", recordID).Str("video_id", videoID).Logger()
	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return err
		}
		status, err := s.videos.Status(ctx, videoID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Debug().Err(err).Int("attempt", attempt).Msg("video status check failed")
			continue
		}
		switch domain.VideoStatus(status.Status) {
		case domain.VideoStatusReady:
			if _, err := s.UpdateVideoStatus(ctx, recordID, domain.VideoStatusReady); err != nil {
				log.Error().Err(err).Msg("mark video ready failed")
				return err
			}
			log.Info().Int("attempt", attempt).Msg("video ready")
			return nil
		case domain.VideoStatusError:
			log.Warn().Int("attempt", attempt).Msg("video render reported an error")
			return ErrVideoFailed
		}
	}
	log.Info().Int("attempts", s.pollAttempts).Msg("video still processing, giving up for now")
	return ErrStillProcessing
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
