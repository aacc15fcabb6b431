package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"contentportal/internal/domain"
	"contentportal/internal/infra"
	"contentportal/internal/sqlinline"
)

const testRecordID = "5b2f8a4e-0c1d-4e7f-9a3b-2c4d6e8f0a1b"

func videoRow(status, result string) contentRow {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return contentRow{
		id: testRecordID, kind: "video", prompt: "uno | dos", status: status,
		metadata: `{"scenes":[]}`, result: result, createdAt: at, updatedAt: at,
	}
}

func TestContentRepositoryCreateEncodesDocuments(t *testing.T) {
	stub := &stubExecutor{}
	stub.queryRow = func(query string, args []any) pgx.Row {
		return videoRow("processing", args[4].(string)).row()
	}
	repo := NewContentRepository(stub)

	rec, err := repo.Create(context.Background(), domain.NewContentRecord{
		Kind:   domain.ContentKindVideo,
		Prompt: "uno | dos",
		Result: map[string]any{"videoId": "v1", "videoStatus": "processing"},
		Status: domain.ContentStatusProcessing,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(stub.calls) != 1 || stub.calls[0].query != sqlinline.QInsertContentItem {
		t.Fatalf("unexpected calls: %#v", stub.calls)
	}
	args := stub.calls[0].args
	if args[0] != "video" || args[2] != "processing" {
		t.Fatalf("unexpected kind/status args: %#v", args)
	}
	if args[3] != "{}" {
		t.Fatalf("nil metadata should encode as empty object, got %v", args[3])
	}
	if rec.VideoID() != "v1" || rec.Kind != domain.ContentKindVideo {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestContentRepositoryGetByIDNotFound(t *testing.T) {
	stub := &stubExecutor{}
	repo := NewContentRepository(stub)

	if _, err := repo.GetByID(context.Background(), testRecordID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("malformed id must not reach the database, calls=%d", len(stub.calls))
	}
}

func TestContentRepositoryUpdateVideoStatus(t *testing.T) {
	stub := &stubExecutor{}
	stub.queryRow = func(query string, args []any) pgx.Row {
		if query != sqlinline.QUpdateVideoStatus {
			t.Fatalf("unexpected query %q", query)
		}
		if args[1] != "ready" || args[2] != "completed" {
			t.Fatalf("unexpected args: %#v", args)
		}
		return videoRow("completed", `{"videoId":"v1","videoStatus":"ready"}`).row()
	}
	repo := NewContentRepository(stub)

	rec, err := repo.UpdateVideoStatus(context.Background(), testRecordID, domain.VideoStatusReady, domain.ContentStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateVideoStatus returned error: %v", err)
	}
	if rec.Status != domain.ContentStatusCompleted || rec.Result["videoStatus"] != "ready" || rec.VideoID() != "v1" {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestContentRepositoryUpdateVideoStatusImmutable(t *testing.T) {
	stub := &stubExecutor{}
	stub.queryRow = func(query string, args []any) pgx.Row {
		if query == sqlinline.QGetContentItem {
			return contentRow{id: testRecordID, kind: "script", status: "completed", metadata: "{}", result: "{}"}.row()
		}
		return simpleRow{}
	}
	repo := NewContentRepository(stub)

	_, err := repo.UpdateVideoStatus(context.Background(), testRecordID, domain.VideoStatusReady, domain.ContentStatusCompleted)
	if !errors.Is(err, domain.ErrImmutableRecord) {
		t.Fatalf("expected ErrImmutableRecord, got %v", err)
	}
}

func TestContentRepositoryUpdateVideoStatusAlreadyCompleted(t *testing.T) {
	stub := &stubExecutor{}
	stub.queryRow = func(query string, args []any) pgx.Row {
		if query == sqlinline.QGetContentItem {
			return videoRow("completed", `{"videoId":"v1","videoStatus":"ready"}`).row()
		}
		return simpleRow{}
	}
	repo := NewContentRepository(stub)

	rec, err := repo.UpdateVideoStatus(context.Background(), testRecordID, domain.VideoStatusReady, domain.ContentStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateVideoStatus returned error: %v", err)
	}
	if rec.Status != domain.ContentStatusCompleted || rec.Result["videoStatus"] != "ready" {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if !strings.Contains(sqlinline.QUpdateVideoStatus, "and status = 'processing'") {
		t.Fatalf("update must only match processing records")
	}
}

func TestContentRepositoryUpdateVideoStatusMissing(t *testing.T) {
	repo := NewContentRepository(&stubExecutor{})

	_, err := repo.UpdateVideoStatus(context.Background(), testRecordID, domain.VideoStatusReady, domain.ContentStatusCompleted)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContentRepositoryListRecent(t *testing.T) {
	rows := &recordRows{rows: []contentRow{
		videoRow("processing", `{"videoId":"v2"}`),
		videoRow("completed", `{"videoId":"v1","videoStatus":"ready"}`),
	}}
	stub := &stubExecutor{query: func(query string, args []any) (pgx.Rows, error) {
		if args[0] != 20 {
			t.Fatalf("unexpected limit %v", args[0])
		}
		return rows, nil
	}}
	repo := NewContentRepository(stub)

	items, err := repo.ListRecent(context.Background(), 20)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(items) != 2 || items[0].VideoID() != "v2" {
		t.Fatalf("unexpected items: %#v", items)
	}
	if !rows.closed {
		t.Fatalf("rows were not closed")
	}
}

func TestContentQueriesCarryMarkers(t *testing.T) {
	queries := map[string]string{
		"QCreateContentItems":            sqlinline.QCreateContentItems,
		"QCreateContentItemsIndex":       sqlinline.QCreateContentItemsIndex,
		"QInsertContentItem":             sqlinline.QInsertContentItem,
		"QGetContentItem":                sqlinline.QGetContentItem,
		"QUpdateVideoStatus":             sqlinline.QUpdateVideoStatus,
		"QListRecentContentItems":        sqlinline.QListRecentContentItems,
		"QCreateContentItemsSQLite":      sqlinline.QCreateContentItemsSQLite,
		"QCreateContentItemsIndexSQLite": sqlinline.QCreateContentItemsIndexSQLite,
		"QInsertContentItemSQLite":       sqlinline.QInsertContentItemSQLite,
		"QGetContentItemSQLite":          sqlinline.QGetContentItemSQLite,
		"QUpdateVideoStatusSQLite":       sqlinline.QUpdateVideoStatusSQLite,
		"QListRecentContentItemsSQLite":  sqlinline.QListRecentContentItemsSQLite,
	}
	seen := map[string]string{}
	for name, q := range queries {
		marker, body, err := infra.ExtractMarker(q)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.TrimSpace(body) == "" {
			t.Fatalf("%s: empty statement", name)
		}
		if other, dup := seen[marker]; dup {
			t.Fatalf("%s reuses marker of %s", name, other)
		}
		seen[marker] = name
	}
}
