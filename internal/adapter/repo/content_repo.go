package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contentportal/internal/domain"
	"contentportal/internal/infra"
	"contentportal/internal/sqlinline"
)

// ContentRepositoryPG implements domain.ContentRepository using PostgreSQL.
type ContentRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewContentRepository constructs the repository on top of a marker-aware executor.
func NewContentRepository(sql infra.SQLExecutor) *ContentRepositoryPG {
	return &ContentRepositoryPG{sql: sql}
}

// Migrate creates the content_items table and its index when missing.
func (r *ContentRepositoryPG) Migrate(ctx context.Context) error {
	for _, stmt := range []string{sqlinline.QCreateContentItems, sqlinline.QCreateContentItemsIndex} {
		if _, err := r.sql.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate content_items: %w", err)
		}
	}
	return nil
}

// Create inserts a record and returns it with its generated id and timestamps.
func (r *ContentRepositoryPG) Create(ctx context.Context, rec domain.NewContentRecord) (*domain.ContentRecord, error) {
	metadata, result, err := encodeDocuments(rec.Metadata, rec.Result)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertContentItem,
		string(rec.Kind),
		rec.Prompt,
		string(rec.Status),
		metadata,
		result,
		rec.AutomationTaskID,
		rec.Error,
	)
	out, err := scanContentRow(row)
	if err != nil {
		return nil, fmt.Errorf("insert content item: %w", err)
	}
	return out, nil
}

// GetByID fetches a record; unknown or malformed ids yield domain.ErrNotFound.
func (r *ContentRepositoryPG) GetByID(ctx context.Context, id string) (*domain.ContentRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	out, err := scanContentRow(r.sql.QueryRow(ctx, sqlinline.QGetContentItem, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content item: %w", err)
	}
	return out, nil
}

// UpdateVideoStatus sets result.videoStatus and status on a mutable video record.
func (r *ContentRepositoryPG) UpdateVideoStatus(ctx context.Context, id string, videoStatus domain.VideoStatus, status domain.ContentStatus) (*domain.ContentRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	out, err := scanContentRow(r.sql.QueryRow(ctx, sqlinline.QUpdateVideoStatus, id, string(videoStatus), string(status)))
	if err == nil {
		return out, nil
	}
	if !infra.IsNoRows(err) {
		return nil, fmt.Errorf("update video status: %w", err)
	}
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.HasVideoState(videoStatus, status) {
		return current, nil
	}
	return nil, domain.ErrImmutableRecord
}

// ListRecent returns up to limit records, newest first.
func (r *ContentRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.ContentRecord, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListRecentContentItems, limit)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentRecord, 0, limit)
	for rows.Next() {
		rec, err := scanContentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	return items, nil
}

func scanContentRow(row pgx.Row) (*domain.ContentRecord, error) {
	var (
		rec              domain.ContentRecord
		kind, status     string
		metadata, result []byte
	)
	if err := row.Scan(
		&rec.ID,
		&kind,
		&rec.Prompt,
		&status,
		&metadata,
		&result,
		&rec.AutomationTaskID,
		&rec.Error,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.Kind = domain.ContentKind(kind)
	rec.Status = domain.ContentStatus(status)
	if err := decodeDocuments(&rec, metadata, result); err != nil {
		return nil, err
	}
	return &rec, nil
}

func encodeDocuments(metadata, result map[string]any) (string, string, error) {
	m, err := encodeDocument(metadata)
	if err != nil {
		return "", "", fmt.Errorf("encode metadata: %w", err)
	}
	r, err := encodeDocument(result)
	if err != nil {
		return "", "", fmt.Errorf("encode result: %w", err)
	}
	return m, r, nil
}

func encodeDocument(doc map[string]any) (string, error) {
	if doc == nil {
		return "{}", nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeDocuments(rec *domain.ContentRecord, metadata, result []byte) error {
	rec.Metadata = map[string]any{}
	rec.Result = map[string]any{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &rec.Result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

var _ domain.ContentRepository = (*ContentRepositoryPG)(nil)
