package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nao1215/obsreport/internal/model"
)

// TestSelect tests format code selection.
func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want Format
	}{
		{code: "N", want: FormatNormal},
		{code: "n", want: FormatNormal},
		{code: "J", want: FormatJSON},
		{code: "j", want: FormatJSON},
		{code: "D", want: FormatDefanged},
		{code: "d", want: FormatDefanged},
		{code: "S", want: FormatShort},
		{code: "s", want: FormatShort},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			r, err := Select(tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Format() != tt.want {
				t.Errorf("got %v, expected %v", r.Format(), tt.want)
			}
		})
	}

	for _, code := range []string{"X", "", "NJ", " N", "json"} {
		t.Run("rejects "+code, func(t *testing.T) {
			t.Parallel()

			r, err := Select(code)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat, got %v", err)
			}
			if r != nil {
				t.Error("expected no renderer")
			}
		})
	}
}

// TestFormat tests format codes and names.
func TestFormat(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		parsed, err := ParseFormat(f.Code())
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", f.Code(), err)
		}
		if parsed != f {
			t.Errorf("ParseFormat(%q) = %v, expected %v", f.Code(), parsed, f)
		}
		if f.String() == "unknown" {
			t.Errorf("format %d has no name", int(f))
		}
	}

	if _, err := New(Format(99)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for unknown format, got %v", err)
	}
}

// TestWriteTo tests writing rendered output.
func TestWriteTo(t *testing.T) {
	t.Parallel()

	t.Run("writes rendered output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := WriteTo(&buf, NewShort(), createTestRows())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() || n == 0 {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}
	})

	t.Run("writes nothing on malformed input", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := WriteTo(&buf, NewNormal(), malformedRows())
		if !errors.Is(err, model.ErrMalformedItem) {
			t.Fatalf("expected ErrMalformedItem, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected empty output, got %q", buf.String())
		}
	})
}
