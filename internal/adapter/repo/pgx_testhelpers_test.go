package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubCall struct {
	query string
	args  []any
}

// stubExecutor records every call and answers from canned handlers.
type stubExecutor struct {
	calls    []stubCall
	exec     func(query string, args []any) (pgconn.CommandTag, error)
	queryRow func(query string, args []any) pgx.Row
	query    func(query string, args []any) (pgx.Rows, error)
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	if s.exec == nil {
		return pgconn.NewCommandTag("OK"), nil
	}
	return s.exec(query, args)
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	if s.queryRow == nil {
		return simpleRow{}
	}
	return s.queryRow(query, args)
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, stubCall{query: query, args: args})
	if s.query == nil {
		return &recordRows{}, nil
	}
	return s.query(query, args)
}

type simpleRow struct {
	scan func(dest ...any) error
}

func (r simpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type testRowsBase struct{}

func (testRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (testRowsBase) Conn() *pgx.Conn { return nil }

func (testRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (testRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (testRowsBase) RawValues() [][]byte { return nil }

// recordRows iterates over canned content_items rows.
type recordRows struct {
	testRowsBase
	rows   []contentRow
	idx    int
	closed bool
}

func (r *recordRows) Close() { r.closed = true }

func (r *recordRows) Err() error { return nil }

func (r *recordRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *recordRows) Scan(dest ...any) error {
	return r.rows[r.idx-1].scan(dest...)
}

// contentRow is one content_items row in column order.
type contentRow struct {
	id, kind, prompt, status string
	metadata, result         string
	taskID, errMsg           string
	createdAt, updatedAt     time.Time
}

func (c contentRow) scan(dest ...any) error {
	if len(dest) != 10 {
		return fmt.Errorf("expected 10 destinations, got %d", len(dest))
	}
	*dest[0].(*string) = c.id
	*dest[1].(*string) = c.kind
	*dest[2].(*string) = c.prompt
	*dest[3].(*string) = c.status
	*dest[4].(*[]byte) = []byte(c.metadata)
	*dest[5].(*[]byte) = []byte(c.result)
	*dest[6].(*string) = c.taskID
	*dest[7].(*string) = c.errMsg
	*dest[8].(*time.Time) = c.createdAt
	*dest[9].(*time.Time) = c.updatedAt
	return nil
}

func (c contentRow) row() pgx.Row {
	return simpleRow{scan: c.scan}
}
