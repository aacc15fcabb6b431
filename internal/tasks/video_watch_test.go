package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentportal/internal/content"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "video-watch:r1", Queue: QueueDefault, Type: task.Type()}, nil
}

type fakeWatcher struct {
	calls []VideoWatchPayload
	err   error
}

func (f *fakeWatcher) WatchVideo(ctx context.Context, recordID, videoID string) error {
	f.calls = append(f.calls, VideoWatchPayload{RecordID: recordID, VideoID: videoID})
	return f.err
}

func TestScheduleVideoWatch(t *testing.T) {
	fake := &fakeEnqueuer{}
	enq := newEnqueuer(fake, 6*time.Minute, nil)

	require.NoError(t, enq.ScheduleVideoWatch(context.Background(), "r1", "v1"))
	require.Len(t, fake.tasks, 1)
	assert.Equal(t, TypeVideoWatch, fake.tasks[0].Type())

	var payload VideoWatchPayload
	require.NoError(t, json.Unmarshal(fake.tasks[0].Payload(), &payload))
	assert.Equal(t, VideoWatchPayload{RecordID: "r1", VideoID: "v1"}, payload)
	assert.Len(t, fake.opts[0], 4)
}

func TestScheduleVideoWatchIgnoresDuplicates(t *testing.T) {
	enq := newEnqueuer(&fakeEnqueuer{err: asynq.ErrTaskIDConflict}, 0, nil)

	assert.NoError(t, enq.ScheduleVideoWatch(context.Background(), "r1", "v1"))
}

func TestScheduleVideoWatchFailure(t *testing.T) {
	boom := errors.New("redis down")
	enq := newEnqueuer(&fakeEnqueuer{err: boom}, 0, nil)

	assert.ErrorIs(t, enq.ScheduleVideoWatch(context.Background(), "r1", "v1"), boom)
}

func TestVideoWatchHandler(t *testing.T) {
	tests := []struct {
		name       string
		watchErr   error
		wantErr    bool
		wantCalled bool
	}{
		{name: "ready", wantCalled: true},
		{name: "still processing", watchErr: fmt.Errorf("wrapped: %w", content.ErrStillProcessing), wantCalled: true},
		{name: "render failed", watchErr: content.ErrVideoFailed, wantCalled: true},
		{name: "persistence failure", watchErr: errors.New("db down"), wantErr: true, wantCalled: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			watcher := &fakeWatcher{err: tt.watchErr}
			h := NewVideoWatchHandler(watcher, nil)
			task, err := NewVideoWatchTask("r1", "v1")
			require.NoError(t, err)

			err = h.ProcessTask(context.Background(), task)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalled, len(watcher.calls) == 1)
		})
	}
}

func TestVideoWatchHandlerRejectsBadPayload(t *testing.T) {
	watcher := &fakeWatcher{}
	h := NewVideoWatchHandler(watcher, nil)

	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeVideoWatch, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), asynq.NewTask(TypeVideoWatch, []byte(`{"recordId":"r1"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, watcher.calls)
}

func TestParseRedisURL(t *testing.T) {
	opt, err := ParseRedisURL("redis://localhost:6379/2")
	require.NoError(t, err)
	client, ok := opt.(asynq.RedisClientOpt)
	require.True(t, ok)
	assert.Equal(t, "localhost:6379", client.Addr)
	assert.Equal(t, 2, client.DB)

	_, err = ParseRedisURL("http://localhost")
	assert.Error(t, err)
}
