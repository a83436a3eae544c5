package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/obsreport/internal/model"
)

// ErrInvalidInput is returned when a result file cannot be decoded or does
// not describe a list of targets.
var ErrInvalidInput = errors.New("invalid result input")

// fileOutcome is the on-disk shape of a site outcome.
// The error key is a pointer so that an empty error message still marks a failure.
type fileOutcome struct {
	Site    string             `yaml:"site"`
	Error   *string            `yaml:"error"`
	Results []model.ResultItem `yaml:"results"`
}

// fileRow is the on-disk shape of a target row.
type fileRow struct {
	Target                 string        `yaml:"target"`
	ObservableType         string        `yaml:"observable_type"`
	ObservableTypeDetected string        `yaml:"observable_type_detected"`
	Outcomes               []fileOutcome `yaml:"outcomes"`
}

// Decode reads result rows from r.
func Decode(r io.Reader) ([]model.TargetRow, error) {
	var raw []fileRow
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.TargetRow{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rows := make([]model.TargetRow, 0, len(raw))
	for i, fr := range raw {
		if fr.Target == "" {
			return nil, fmt.Errorf("%w: entry %d has no target", ErrInvalidInput, i)
		}

		row := model.NewTargetRow(fr.Target, fr.ObservableType, fr.ObservableTypeDetected)
		for _, fo := range fr.Outcomes {
			row.AddOutcome(toOutcome(fo))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// toOutcome maps the on-disk outcome to its tagged form.
func toOutcome(fo fileOutcome) model.SiteOutcome {
	switch {
	case fo.Error != nil:
		return model.NewErrorOutcome(fo.Site, *fo.Error)
	case len(fo.Results) > 0:
		return model.NewResultsOutcome(fo.Site, fo.Results...)
	default:
		return model.NewEmptyOutcome(fo.Site)
	}
}

// newTextDecoder converts UTF-16 files that start with a byte order mark to
// UTF-8. Files without a BOM are read as UTF-8.
func newTextDecoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// LoadFile reads result rows from the file at path.
func LoadFile(path string) ([]model.TargetRow, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	rows, err := Decode(transform.NewReader(f, newTextDecoder()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// LoadFiles reads every file with a default Loader and concatenates their
// rows in path order.
func LoadFiles(paths ...string) ([]model.TargetRow, error) {
	return NewLoader().Load(context.Background(), paths)
}
