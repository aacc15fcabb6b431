package domain

import "context"

// ContentRepository persists content records. Implementations must serialize
// individual writes: Create returns a fresh id and UpdateVideoStatus is a single
// atomic change of the targeted record.
type ContentRepository interface {
	Create(ctx context.Context, rec NewContentRecord) (*ContentRecord, error)
	GetByID(ctx context.Context, id string) (*ContentRecord, error)
	UpdateVideoStatus(ctx context.Context, id string, videoStatus VideoStatus, status ContentStatus) (*ContentRecord, error)
	ListRecent(ctx context.Context, limit int) ([]ContentRecord, error)
}
