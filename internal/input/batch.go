package input

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/obsreport/internal/model"
)

// defaultConcurrency is the number of files decoded at once.
const defaultConcurrency = 4

// Loader decodes several result files concurrently.
// Rows keep the order of the paths they came from.
type Loader struct {
	// concurrency is the maximum number of files decoded at once.
	concurrency int

	// logger is used for per-file logging.
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithConcurrency sets the maximum number of files decoded at once.
// Values below one are ignored.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Load decodes every path and concatenates the rows in path order.
// The first failing file cancels the rest and its error is returned.
func (l *Loader) Load(ctx context.Context, paths []string) ([]model.TargetRow, error) {
	startTime := time.Now()

	// One slot per path so output order does not depend on completion order.
	perFile := make([][]model.TargetRow, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rows, err := LoadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = rows

			l.logger.Debug("result file decoded", "file", path, "targets", len(rows))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []model.TargetRow
	for _, fileRows := range perFile {
		rows = append(rows, fileRows...)
	}

	l.logger.Debug("result files loaded",
		"files", len(paths),
		"targets", len(rows),
		"elapsed", time.Since(startTime),
	)
	return rows, nil
}
