package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/obsreport/internal/defang"
	"github.com/nao1215/obsreport/internal/model"
)

// Banner widths.
const (
	bannerWidth     = 50
	disclaimerWidth = 80
)

// EscapeFunc converts a single value to display text.
type EscapeFunc func(v any) string

// bannerFunc writes the per-target banner.
type bannerFunc func(b *buffer, row model.TargetRow, escape EscapeFunc)

// TextRenderer renders results as human-readable lines.
//
// Design decision: The normal and defanged formats share one result-walking
// routine. They differ only in the injected escape and banner functions,
// which keeps the two layouts identical except where they must differ.
type TextRenderer struct {
	format Format
	escape EscapeFunc
	banner bannerFunc
	color  bool
}

// NewNormal creates the renderer for format code N.
func NewNormal(opts ...Option) *TextRenderer {
	s := newSettings(opts)
	return &TextRenderer{
		format: FormatNormal,
		escape: defang.Identity,
		banner: standardBanner,
		color:  s.color,
	}
}

// NewDefanged creates the renderer for format code D.
func NewDefanged(opts ...Option) *TextRenderer {
	s := newSettings(opts)
	return &TextRenderer{
		format: FormatDefanged,
		escape: defang.Escape,
		banner: defangedBanner,
		color:  s.color,
	}
}

// Format returns the format this renderer produces.
func (r *TextRenderer) Format() Format {
	return r.format
}

// Render produces the text report for rows.
func (r *TextRenderer) Render(rows []model.TargetRow) (string, error) {
	if err := model.ValidateRows(rows); err != nil {
		return "", err
	}

	b := newBuffer(r.color)
	for _, row := range rows {
		r.banner(b, row, r.escape)
		b.println("")

		for _, outcome := range row.Outcomes {
			switch outcome.Kind() {
			case model.OutcomeError:
				b.println(b.paint(ColorError,
					fmt.Sprintf("[!] Error from %s: %s", outcome.SiteName, outcome.ErrorMessage)))
			case model.OutcomeResults:
				b.println(b.paint(ColorOKGreen, fmt.Sprintf("[+] %s Results", outcome.SiteName)))
				for _, item := range outcome.Items {
					b.println("    [-] " + r.composeItem(item))
				}
			default:
				b.println(b.paint(ColorWarning, fmt.Sprintf("[-] No %s Results", outcome.SiteName)))
			}
		}
	}

	return b.String(), nil
}

// composeItem builds the display text of a single finding.
func (r *TextRenderer) composeItem(item model.ResultItem) string {
	var out string
	if len(item.Values) > 1 || item.HasLabels() {
		parts := make([]string, len(item.Values))
		for i, f := range item.Values {
			value := r.escape(f.Value)
			if item.HasLabels() {
				value = item.Labels[i] + ": " + value
			}
			parts[i] = value
		}
		out = strings.Join(parts, ", ")
		if item.Annotation != nil {
			out = "(" + out + ")"
		}
	} else {
		out = r.escape(item.Values[0].Value)
	}

	if item.Annotation != nil {
		out = r.escape(*item.Annotation) + ": " + out
	}

	// Composition can produce URLs the per-value escape never saw.
	return defang.Line(out)
}

// standardBanner writes the target header used by the normal format.
func standardBanner(b *buffer, row model.TargetRow, escape EscapeFunc) {
	b.println(b.open(ColorHeader) + strings.Repeat("-", bannerWidth))
	b.println(fmt.Sprintf(" Information for %s", escape(row.Target)))
	b.println(fmt.Sprintf(" Observable type: %s (Auto-detected: %s)",
		row.ObservableType, row.ObservableTypeDetected))
	b.println(strings.Repeat("-", bannerWidth) + b.close())
}

// defangedBanner writes the standard header followed by the escape disclaimer.
func defangedBanner(b *buffer, row model.TargetRow, escape EscapeFunc) {
	standardBanner(b, row, escape)
	b.println("* These characters are escaped in the output below:")
	for _, r := range defang.Table() {
		b.println(fmt.Sprintf("* '%s' replaced with '%s'", r.Find, r.Replace))
	}
	b.println("* Do not click any links you find below")
	b.println(strings.Repeat("*", disclaimerWidth))
}
