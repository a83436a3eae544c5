package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/obsreport/internal/model"
)

// ErrUnsupportedFormat is returned when a format code is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Renderer turns a full result sequence into a single output string.
//
// Implementations are stateless between calls. Render validates the input
// first; a malformed item aborts the whole call and no output is returned.
type Renderer interface {
	// Render produces the complete output for rows.
	Render(rows []model.TargetRow) (string, error)

	// Format returns the format this renderer produces.
	Format() Format
}

// Format is the closed set of output formats.
type Format int

const (
	// FormatNormal is human-readable text with colour.
	FormatNormal Format = iota

	// FormatJSON is newline-delimited JSON records.
	FormatJSON

	// FormatDefanged is human-readable text with indicators defanged.
	FormatDefanged

	// FormatShort is a per-site Yes/No/Error summary.
	FormatShort
)

// Formats returns every supported format in code order.
func Formats() []Format {
	return []Format{FormatNormal, FormatJSON, FormatDefanged, FormatShort}
}

// Code returns the single-character code selecting the format.
func (f Format) Code() string {
	switch f {
	case FormatNormal:
		return "N"
	case FormatJSON:
		return "J"
	case FormatDefanged:
		return "D"
	case FormatShort:
		return "S"
	default:
		return "?"
	}
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatNormal:
		return "normal"
	case FormatJSON:
		return "json"
	case FormatDefanged:
		return "defanged"
	case FormatShort:
		return "short"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format code to a Format. Codes are case-insensitive.
// Any other code returns an error wrapping ErrUnsupportedFormat.
func ParseFormat(code string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(code, f.Code()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of N, J, D, S)", ErrUnsupportedFormat, code)
}

// Option configures a renderer. Options that do not apply to the selected
// format are ignored.
type Option func(*settings)

// settings holds every renderer option.
type settings struct {
	// color enables ANSI colour codes in text output.
	color bool

	// indent enables indented JSON records. Empty means compact.
	indent string
}

// WithColor enables or disables ANSI colour in text output.
// Colour is enabled by default.
func WithColor(enabled bool) Option {
	return func(s *settings) {
		s.color = enabled
	}
}

// WithIndent indents JSON records with the given string.
// Indented records span several lines, so the output is no longer one
// record per line; use it for debugging only.
func WithIndent(indent string) Option {
	return func(s *settings) {
		s.indent = indent
	}
}

// newSettings applies opts over the defaults.
func newSettings(opts []Option) settings {
	s := settings{color: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New creates the renderer for f.
func New(f Format, opts ...Option) (Renderer, error) {
	switch f {
	case FormatNormal:
		return NewNormal(opts...), nil
	case FormatJSON:
		return NewJSON(opts...), nil
	case FormatDefanged:
		return NewDefanged(opts...), nil
	case FormatShort:
		return NewShort(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f))
	}
}

// Select returns the renderer for a format code.
func Select(code string, opts ...Option) (Renderer, error) {
	f, err := ParseFormat(code)
	if err != nil {
		return nil, err
	}
	return New(f, opts...)
}

// WriteTo renders rows with r and writes the result to w.
// Nothing is written when rendering fails.
func WriteTo(w io.Writer, r Renderer, rows []model.TargetRow) (int, error) {
	out, err := r.Render(rows)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, out)
}
