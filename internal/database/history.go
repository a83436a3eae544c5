package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the history database inside the data directory.
const FileName = "history.db"

// createdLayout is a fixed-width UTC layout so text order matches time order.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("render run not found")

// HistoryDB stores past render runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time. Replaced in tests.
	now func() time.Time
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is one stored render invocation.
type Run struct {
	ID          string
	Format      string
	TargetCount int
	Inputs      []string
	Created     time.Time
	// Records holds one JSON record per line, in render order.
	Records string
}

// Open opens or creates a HistoryDB inside dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS render_runs (
		id TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		target_count INTEGER NOT NULL,
		inputs TEXT NOT NULL DEFAULT '',
		created TEXT NOT NULL,
		records TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON render_runs(created);
	`
	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a run. Empty ID and zero Created are filled in, and the
// stored run is returned.
func (h *HistoryDB) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Created.IsZero() {
		run.Created = h.now()
	}
	run.Created = run.Created.UTC()

	query := `
	INSERT INTO render_runs (id, format, target_count, inputs, created, records)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query,
		run.ID,
		run.Format,
		run.TargetCount,
		strings.Join(run.Inputs, "\n"),
		run.Created.Format(createdLayout),
		run.Records,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to save render run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first, without their records.
// A limit of zero or less returns every run.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, format, target_count, inputs, created
	FROM render_runs
	ORDER BY created DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list render runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var inputs, created string
		if err := rows.Scan(&run.ID, &run.Format, &run.TargetCount, &inputs, &created); err != nil {
			return nil, fmt.Errorf("failed to scan render run: %w", err)
		}
		run.Inputs = splitInputs(inputs)
		run.Created = parseTimestamp(created)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a run with its records. A missing ID yields ErrRunNotFound.
func (h *HistoryDB) GetRun(ctx context.Context, id string) (Run, error) {
	query := `
	SELECT id, format, target_count, inputs, created, records
	FROM render_runs
	WHERE id = ?
	`

	var run Run
	var inputs, created string
	err := h.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Format, &run.TargetCount, &inputs, &created, &run.Records,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get render run: %w", err)
	}
	run.Inputs = splitInputs(inputs)
	run.Created = parseTimestamp(created)
	return run, nil
}

func splitInputs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// timestampFormats contains the timestamp formats accepted when reading rows.
var timestampFormats = []string{
	createdLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
