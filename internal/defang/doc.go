// Package defang rewrites indicator text so that it cannot be clicked,
// resolved, or mailed by accident when a report is shared.
//
// Two passes are provided:
//   - Escape applies the fixed ordered replacement Table to a whole string.
//   - Line defangs fully-formed URLs that appear inside an already composed
//     line of output. It is applied to every finding line, whatever the
//     output format, because joining values with labels and annotations can
//     produce such URLs after the per-value escape has run.
package defang
