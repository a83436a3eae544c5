// Package report renders enrichment results into their output formats.
//
// This package contains one renderer per format code:
//   - N: TextRenderer built by NewNormal, human-readable with ANSI colour
//   - D: TextRenderer built by NewDefanged, the same layout with indicators
//     defanged and a disclaimer under every target banner
//   - J: JSONRenderer, one compact JSON record per target/site pair per line
//   - S: ShortRenderer, a terse Yes/No/Error summary per site
//
// Design decision: We separate rendering from the result data structures
// (which are in the model package) and keep renderers free of I/O. A render
// call builds its output in a buffer owned by that call and returns it; the
// caller decides where it goes. Select maps a format code to a renderer and
// rejects unknown codes before any rendering begins.
package report
