package input

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTargets writes a result file holding one target per name.
func writeTargets(t *testing.T, dir, file string, targets ...string) string {
	t.Helper()

	var content string
	for _, target := range targets {
		content += fmt.Sprintf("- target: %s\n  observable_type: fqdn\n  observable_type_detected: fqdn\n  outcomes:\n    - site: Blocklist\n", target)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoader_Load tests concurrent loading.
func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("keeps path order regardless of concurrency", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var paths []string
		var want []string
		for i := range 12 {
			a := fmt.Sprintf("a%02d.example", i)
			b := fmt.Sprintf("b%02d.example", i)
			paths = append(paths, writeTargets(t, dir, fmt.Sprintf("f%02d.yaml", i), a, b))
			want = append(want, a, b)
		}

		rows, err := NewLoader(WithConcurrency(5)).Load(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(rows))
		}
		for i, row := range rows {
			if row.Target != want[i] {
				t.Errorf("row %d: got %q, expected %q", i, row.Target, want[i])
			}
		}
	})

	t.Run("fails when any file fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := []string{
			writeTargets(t, dir, "ok.yaml", "ok.example"),
			filepath.Join(dir, "missing.yaml"),
		}

		rows, err := NewLoader().Load(context.Background(), paths)
		if err == nil {
			t.Fatal("expected error")
		}
		if rows != nil {
			t.Errorf("expected no rows on failure, got %d", len(rows))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := writeTargets(t, t.TempDir(), "ok.yaml", "ok.example")
		if _, err := NewLoader().Load(ctx, []string{path}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("no paths", func(t *testing.T) {
		t.Parallel()

		rows, err := NewLoader().Load(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

// TestWithConcurrency tests option validation.
func TestWithConcurrency(t *testing.T) {
	t.Parallel()

	if got := NewLoader(WithConcurrency(0)).concurrency; got != defaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", defaultConcurrency, got)
	}
	if got := NewLoader(WithConcurrency(2)).concurrency; got != 2 {
		t.Errorf("expected concurrency 2, got %d", got)
	}
}
