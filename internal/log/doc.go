// Package log provides safe logging built on top of the standard slog package.
//
// The SecureHandler wraps any slog.Handler and rewrites attributes before
// they are written:
//   - Values under credential-like keys (api keys, tokens, cookies) are masked
//   - Values that look like bearer tokens, JWTs, or long API keys are masked
//   - Values under observable keys (target, observable, url) are defanged so
//     an indicator copied out of a log cannot be clicked by accident
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("rendering", "target", "http://evil.example") // target=hxxp://evil[.]example
//	slog.SetDefault(logger)
package log
