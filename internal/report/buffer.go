package report

import "strings"

// ANSI escape sequences used by the text renderers.
// They are fixed; WithColor(false) omits them entirely.
const (
	ColorHeader  = "\033[95m"
	ColorOKGreen = "\033[92m"
	ColorWarning = "\033[93m"
	ColorError   = "\033[91m"
	ColorEnd     = "\033[0m"
)

// buffer collects the output of a single render call.
type buffer struct {
	sb    strings.Builder
	color bool
}

// newBuffer creates an empty buffer.
func newBuffer(color bool) *buffer {
	return &buffer{color: color}
}

// println writes line followed by a newline.
func (b *buffer) println(line string) {
	b.sb.WriteString(line)
	b.sb.WriteByte('\n')
}

// open returns code when colour is enabled.
func (b *buffer) open(code string) string {
	if !b.color {
		return ""
	}
	return code
}

// close returns the colour reset sequence when colour is enabled.
func (b *buffer) close() string {
	return b.open(ColorEnd)
}

// paint wraps line in code and the reset sequence.
func (b *buffer) paint(code, line string) string {
	return b.open(code) + line + b.close()
}

// String returns the collected output.
func (b *buffer) String() string {
	return b.sb.String()
}
