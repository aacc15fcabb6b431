package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGoFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintAcceptsMarkedStatements(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "queries.go", "package q\n\n"+
		"const QCreate = `--sql 7e20e8c6-b39a-4570-8187-ebca292da36c\ncreate table if not exists t (id int);`\n\n"+
		"const QSelect = `--sql 1a30d061-e773-42df-b6ce-7d8e5acf0859\nselect id from t;`\n\n"+
		"const message = \"failed to update the record\"\n")

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint() error: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("lint() = %+v, want no violations", violations)
	}
}

func TestLintReportsMissingMarkers(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "queries.go", "package q\n\n"+
		"const QNoMarker = `select 1;`\n\n"+
		"const QBadMarker = `--sql not-a-uuid\ninsert into t values (1);`\n\n"+
		"var QDrop = \"drop table t\"\n")

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint() error: %v", err)
	}
	if len(violations) != 3 {
		t.Fatalf("lint() returned %d violations, want 3: %+v", len(violations), violations)
	}
	names := []string{violations[0].name, violations[1].name, violations[2].name}
	if strings.Join(names, ",") != "QNoMarker,QBadMarker,QDrop" {
		t.Fatalf("violation order = %v", names)
	}
}

func TestLintReportsDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	marker := "--sql 65621303-1dab-434f-ae51-1fc59edad05d"
	writeGoFile(t, dir, "a.go", "package q\n\nconst QFirst = `"+marker+"\nselect 1;`\n")
	writeGoFile(t, dir, "b.go", "package q\n\nconst QSecond = `"+marker+"\nselect 2;`\n")

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint() error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("lint() returned %d violations, want 1: %+v", len(violations), violations)
	}
	if violations[0].name != "QSecond" || !strings.Contains(violations[0].message, "QFirst") {
		t.Fatalf("duplicate violation = %+v", violations[0])
	}
}

func TestLintSkipsTestsAndHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "x_test.go", "package q\n\nconst QTest = `select 1;`\n")
	hidden := filepath.Join(dir, "_fixtures")
	if err := os.Mkdir(hidden, 0o755); err != nil {
		t.Fatal(err)
	}
	writeGoFile(t, hidden, "y.go", "package q\n\nconst QHidden = `select 1;`\n")

	violations, err := lint([]string{dir})
	if err != nil {
		t.Fatalf("lint() error: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("lint() = %+v, want none", violations)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, []violation{{file: "q.go", line: 4, name: "QX", message: "missing or invalid --sql <uuid> marker"}})
	if !strings.Contains(buf.String(), "q.go:4 missing or invalid --sql <uuid> marker (QX)") {
		t.Fatalf("report = %q", buf.String())
	}
}
