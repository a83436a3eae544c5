package defang

import (
	"fmt"
	"regexp"
	"strings"
)

// Replacement is one literal substitution of the escape table.
type Replacement struct {
	Find    string
	Replace string
}

// table is applied in order. Dots are rewritten before the scheme prefixes,
// so "https://a.b" becomes "https://a[.]b" and then "hxxps://a[.]b".
var table = []Replacement{
	{Find: ".", Replace: "[.]"},
	{Find: "@", Replace: " AT "},
	{Find: "http://", Replace: "hxxp://"},
	{Find: "https://", Replace: "hxxps://"},
}

// Table returns a copy of the ordered escape table.
func Table() []Replacement {
	out := make([]Replacement, len(table))
	copy(out, table)
	return out
}

// Identity stringifies v without altering it.
func Identity(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Escape stringifies v and applies every table entry once, left to right,
// over the whole string.
func Escape(v any) string {
	text := Identity(v)
	for _, r := range table {
		text = strings.ReplaceAll(text, r.Find, r.Replace)
	}
	return text
}

// urlPattern matches a scheme and the host part of a URL.
var urlPattern = regexp.MustCompile(`(?i)\b(https?|ftp)://([^\s/?#'"()<>,]+)`)

// schemes maps supported schemes to their defanged form.
var schemes = map[string]string{
	"http":  "hxxp",
	"https": "hxxps",
	"ftp":   "fxp",
}

// Line defangs every fully-formed URL embedded in line. The scheme is
// rewritten and every dot of the host is bracketed; text outside URLs is
// left untouched, so bare values such as "foo.com" survive unchanged.
func Line(line string) string {
	return urlPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := urlPattern.FindStringSubmatch(match)
		scheme := schemes[strings.ToLower(parts[1])]
		host := strings.ReplaceAll(parts[2], ".", "[.]")
		return scheme + "://" + host
	})
}
