package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contentportal/internal/domain"
	"contentportal/internal/infra"
	"contentportal/internal/sqlinline"
)

// sqliteTimeLayout keeps a fixed width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// ContentRepositorySQLite implements domain.ContentRepository on a local SQLite file.
type ContentRepositorySQLite struct {
	sql *infra.SQLiteRunner
	now func() time.Time
}

// NewContentRepositorySQLite constructs the repository.
func NewContentRepositorySQLite(runner *infra.SQLiteRunner) *ContentRepositorySQLite {
	return &ContentRepositorySQLite{sql: runner, now: time.Now}
}

// Migrate creates the content_items table and its index when missing.
func (r *ContentRepositorySQLite) Migrate(ctx context.Context) error {
	for _, stmt := range []string{sqlinline.QCreateContentItemsSQLite, sqlinline.QCreateContentItemsIndexSQLite} {
		if _, err := r.sql.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate content_items: %w", err)
		}
	}
	return nil
}

func (r *ContentRepositorySQLite) Create(ctx context.Context, rec domain.NewContentRecord) (*domain.ContentRecord, error) {
	metadata, result, err := encodeDocuments(rec.Metadata, rec.Result)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	now := formatSQLiteTime(r.now())
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertContentItemSQLite,
		id,
		string(rec.Kind),
		rec.Prompt,
		string(rec.Status),
		metadata,
		result,
		rec.AutomationTaskID,
		rec.Error,
		now,
		now,
	); err != nil {
		return nil, fmt.Errorf("insert content item: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ContentRepositorySQLite) GetByID(ctx context.Context, id string) (*domain.ContentRecord, error) {
	out, err := scanSQLiteRow(r.sql.QueryRow(ctx, sqlinline.QGetContentItemSQLite, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content item: %w", err)
	}
	return out, nil
}

func (r *ContentRepositorySQLite) UpdateVideoStatus(ctx context.Context, id string, videoStatus domain.VideoStatus, status domain.ContentStatus) (*domain.ContentRecord, error) {
	res, err := r.sql.Exec(ctx, sqlinline.QUpdateVideoStatusSQLite,
		string(status),
		string(videoStatus),
		formatSQLiteTime(r.now()),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update video status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update video status: %w", err)
	}
	if affected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.HasVideoState(videoStatus, status) {
			return current, nil
		}
		return nil, domain.ErrImmutableRecord
	}
	return r.GetByID(ctx, id)
}

func (r *ContentRepositorySQLite) ListRecent(ctx context.Context, limit int) ([]domain.ContentRecord, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListRecentContentItemsSQLite, limit)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentRecord, 0, limit)
	for rows.Next() {
		rec, err := scanSQLiteRow(rows)
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

func scanSQLiteRow(row pgx.Row) (*domain.ContentRecord, error) {
	var (
		rec                  domain.ContentRecord
		kind, status         string
		metadata, result     string
		createdAt, updatedAt string
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
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	rec.Kind = domain.ContentKind(kind)
	rec.Status = domain.ContentStatus(status)
	if err := decodeDocuments(&rec, []byte(metadata), []byte(result)); err != nil {
		return nil, err
	}
	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &rec, nil
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

var _ domain.ContentRepository = (*ContentRepositorySQLite)(nil)
