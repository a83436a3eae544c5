package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedItem is returned when a ResultItem violates its structural
// invariants, for example when its label count differs from its value count.
var ErrMalformedItem = errors.New("malformed result item")

// Field is one named value inside a finding.
// Value holds a string, an integer, a float, or a bool.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// ResultItem is one discrete finding returned by a site for a target.
type ResultItem struct {
	// PrettyName is the human-facing grouping key for this kind of finding.
	PrettyName string `json:"pretty_name" yaml:"pretty_name"`

	// Values holds the finding's fields in order. At least one is required.
	Values []Field `json:"values" yaml:"values"`

	// Labels optionally gives a display label per value.
	// When present its length equals len(Values).
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Annotation is an optional qualifier rendered alongside the values,
	// such as a timestamp or a confidence score.
	Annotation *string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// NewResultItem creates a ResultItem from ordered fields.
func NewResultItem(prettyName string, values ...Field) ResultItem {
	return ResultItem{
		PrettyName: prettyName,
		Values:     values,
	}
}

// WithLabels returns a copy of the item carrying the given labels.
func (i ResultItem) WithLabels(labels ...string) ResultItem {
	i.Labels = labels
	return i
}

// WithAnnotation returns a copy of the item carrying the given annotation.
func (i ResultItem) WithAnnotation(annotation string) ResultItem {
	i.Annotation = &annotation
	return i
}

// HasLabels reports whether the item carries labels.
func (i ResultItem) HasLabels() bool {
	return i.Labels != nil
}

// RawValues returns the field values in order.
func (i ResultItem) RawValues() []any {
	values := make([]any, len(i.Values))
	for n, f := range i.Values {
		values[n] = f.Value
	}
	return values
}

// Validate checks the item's structural invariants.
// The returned error wraps ErrMalformedItem.
func (i ResultItem) Validate() error {
	if len(i.Values) == 0 {
		return fmt.Errorf("%w: %q has no values", ErrMalformedItem, i.PrettyName)
	}
	if i.Labels != nil && len(i.Labels) != len(i.Values) {
		return fmt.Errorf("%w: %q has %d labels for %d values",
			ErrMalformedItem, i.PrettyName, len(i.Labels), len(i.Values))
	}
	for _, f := range i.Values {
		switch v := f.Value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		case float32:
			if !isFinite(float64(v)) {
				return nonFinite(i.PrettyName, f)
			}
		case float64:
			if !isFinite(v) {
				return nonFinite(i.PrettyName, f)
			}
		default:
			return fmt.Errorf("%w: %q field %q has unsupported value type %T",
				ErrMalformedItem, i.PrettyName, f.Name, f.Value)
		}
	}
	return nil
}

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonFinite reports a NaN or infinite field, which JSON cannot represent.
func nonFinite(prettyName string, f Field) error {
	return fmt.Errorf("%w: %q field %q has non-finite value %v",
		ErrMalformedItem, prettyName, f.Name, f.Value)
}

// ValidateRows checks every item of every outcome in rows.
// It stops at the first violation so callers can abort before emitting output.
func ValidateRows(rows []TargetRow) error {
	for _, row := range rows {
		for _, outcome := range row.Outcomes {
			if outcome.Kind() != OutcomeResults {
				continue
			}
			for _, item := range outcome.Items {
				if err := item.Validate(); err != nil {
					return fmt.Errorf("target %q, site %q: %w", row.Target, outcome.SiteName, err)
				}
			}
		}
	}
	return nil
}
