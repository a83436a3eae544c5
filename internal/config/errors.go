package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no result file is given to render.
	ErrNoInput = errors.New("no input specified: provide at least one result file with --input")

	// ErrNoFormat is returned when the format code is empty.
	// Whether a non-empty code is supported is decided by the report package.
	ErrNoFormat = errors.New("no output format specified")

	// ErrNoHistoryDir is returned when history is enabled without a directory
	// to keep the database in.
	ErrNoHistoryDir = errors.New("render history enabled but no database directory configured")
)
