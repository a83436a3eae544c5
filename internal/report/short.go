package report

import (
	"fmt"

	"github.com/nao1215/obsreport/internal/model"
)

// ShortRenderer renders one status word per site, ignoring finding content.
type ShortRenderer struct{}

// NewShort creates the renderer for format code S.
func NewShort() *ShortRenderer {
	return &ShortRenderer{}
}

// Format returns the format this renderer produces.
func (r *ShortRenderer) Format() Format {
	return FormatShort
}

// Render produces the summary for rows.
func (r *ShortRenderer) Render(rows []model.TargetRow) (string, error) {
	if err := model.ValidateRows(rows); err != nil {
		return "", err
	}

	b := newBuffer(false)
	for _, row := range rows {
		b.println(fmt.Sprintf("[+] %s", row.Target))
		for _, outcome := range row.Outcomes {
			b.println(fmt.Sprintf("    %s: %s", outcome.SiteName, statusWord(outcome.Kind())))
		}
	}
	return b.String(), nil
}

// statusWord returns the summary word for an outcome state.
func statusWord(kind model.OutcomeKind) string {
	switch kind {
	case model.OutcomeError:
		return "Error"
	case model.OutcomeResults:
		return "Yes"
	default:
		return "No"
	}
}
