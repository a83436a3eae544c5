package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "missing")
		_, err := Open(dbDir, Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		_ = db.Close()
	})
}

// TestSaveAndGetRun tests that a saved run can be read back.
func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	records := `{"site":"Busy Site","results":{"Domain":"foo.com"}}` + "\n"
	saved, err := db.SaveRun(ctx, Run{
		Format:      "J",
		TargetCount: 1,
		Inputs:      []string{"a.yaml", "b.yaml"},
		Records:     records,
	})
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated ID")
	}
	if saved.Created.IsZero() {
		t.Fatal("expected creation time")
	}

	got, err := db.GetRun(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Format != "J" || got.TargetCount != 1 {
		t.Errorf("GetRun() = %+v", got)
	}
	if got.Records != records {
		t.Errorf("Records = %q, want %q", got.Records, records)
	}
	if len(got.Inputs) != 2 || got.Inputs[1] != "b.yaml" {
		t.Errorf("Inputs = %v", got.Inputs)
	}
	if !got.Created.Equal(saved.Created) {
		t.Errorf("Created = %v, want %v", got.Created, saved.Created)
	}
}

// TestGetRun_NotFound tests the missing-run error.
func TestGetRun_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	_, err := db.GetRun(context.Background(), "no-such-run")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

// TestListRuns tests ordering and limits.
func TestListRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, format := range []string{"N", "D", "S"} {
		_, err := db.SaveRun(ctx, Run{
			Format:      format,
			TargetCount: i + 1,
			Created:     base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	runs, err := db.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].Format != "S" || runs[2].Format != "N" {
		t.Errorf("expected newest first, got %s..%s", runs[0].Format, runs[2].Format)
	}
	if runs[0].Records != "" {
		t.Error("ListRuns should not load records")
	}

	limited, err := db.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

// TestListRuns_Empty tests listing an empty history.
func TestListRuns_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	runs, err := db.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

// TestParseTimestamp tests timestamp parsing fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "rfc3339 nano", input: "2024-01-01T10:00:00.123456789Z"},
		{name: "rfc3339", input: "2024-01-01T10:00:00Z"},
		{name: "sqlite default", input: "2024-01-01 10:00:00"},
		{name: "garbage", input: "yesterday", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q) = %v", tt.input, got)
			}
		})
	}
}

// TestListRuns_SubsecondOrder tests ordering of runs within one second.
func TestListRuns_SubsecondOrder(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// Saved newest first so insertion order cannot produce the expected result.
	for _, offset := range []time.Duration{900 * time.Millisecond, 100 * time.Millisecond, 0} {
		_, err := db.SaveRun(ctx, Run{Format: "N", Created: base.Add(offset)})
		if err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	runs, err := db.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Created.After(runs[i-1].Created) {
			t.Errorf("run %d (%v) listed after older run %d (%v)",
				i, runs[i].Created, i-1, runs[i-1].Created)
		}
	}
	if !runs[2].Created.Equal(base) {
		t.Errorf("oldest run = %v, want %v", runs[2].Created, base)
	}
}
