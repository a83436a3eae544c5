// Package database provides SQLite-based storage for obsreport.
//
// This package implements the HistoryDB, which keeps one row per render
// run: the output format, how many targets were rendered, and the
// JSON-lines records of the run so it can be inspected later.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// history is a single local file and the CGO-free driver keeps the binary
// easy to cross-compile.
package database
