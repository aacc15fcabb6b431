package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"contentportal/internal/automation"
	"contentportal/internal/domain"
	"contentportal/internal/events"
	"contentportal/internal/videoservice"
)

type memoryRepo struct {
	mu      sync.Mutex
	records map[string]*domain.ContentRecord
	order   []string
	seq     int
	failOn  string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: map[string]*domain.ContentRecord{}}
}

func (m *memoryRepo) Create(ctx context.Context, rec domain.NewContentRecord) (*domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "create" {
		return nil, fmt.Errorf("insert content item: connection reset")
	}
	m.seq++
	now := time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	out := &domain.ContentRecord{
		ID:               fmt.Sprintf("rec-%d", m.seq),
		Kind:             rec.Kind,
		Prompt:           rec.Prompt,
		Metadata:         rec.Metadata,
		Result:           rec.Result,
		Status:           rec.Status,
		AutomationTaskID: rec.AutomationTaskID,
		Error:            rec.Error,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.records[out.ID] = out
	m.order = append(m.order, out.ID)
	cp := *out
	return &cp, nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memoryRepo) UpdateVideoStatus(ctx context.Context, id string, videoStatus domain.VideoStatus, status domain.ContentStatus) (*domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "update" {
		return nil, fmt.Errorf("update video status: connection reset")
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.HasVideoState(videoStatus, status) {
		cp := *rec
		return &cp, nil
	}
	if rec.Kind != domain.ContentKindVideo || rec.Status != domain.ContentStatusProcessing {
		return nil, domain.ErrImmutableRecord
	}
	result := map[string]any{}
	for k, v := range rec.Result {
		result[k] = v
	}
	result[domain.ResultKeyVideoStatus] = string(videoStatus)
	rec.Result = result
	rec.Status = status
	rec.UpdatedAt = rec.UpdatedAt.Add(time.Minute)
	cp := *rec
	return &cp, nil
}

func (m *memoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ContentRecord
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.records[m.order[i]])
	}
	return out, nil
}

type fakeAutomation struct {
	requests []automation.Request
	resp     *automation.Response
	err      error
}

func (f *fakeAutomation) Trigger(ctx context.Context, req automation.Request) (*automation.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeVideos struct {
	statuses []string
	errs     []error
	calls    int
}

func (f *fakeVideos) Status(ctx context.Context, videoID string) (*videoservice.Status, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	status := "processing"
	if i < len(f.statuses) {
		status = f.statuses[i]
	}
	return &videoservice.Status{Status: status, Raw: map[string]any{"status": status}}, nil
}

func (f *fakeVideos) Download(ctx context.Context, videoID string) (*videoservice.Video, error) {
	return nil, videoservice.ErrMissingVideoID
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.events = append(p.events, evt)
	return p.err
}

type recordingScheduler struct {
	scheduled [][2]string
	err       error
}

func (r *recordingScheduler) ScheduleVideoWatch(ctx context.Context, recordID, videoID string) error {
	r.scheduled = append(r.scheduled, [2]string{recordID, videoID})
	return r.err
}
