// Package log provides PII-safe structured logging for exposurescan.
//
// The scanner handles a real person's name, email, phone, and address, and
// its search queries embed those values verbatim. The PIIHandler wraps any
// slog.Handler and masks identity attributes and PII-shaped values before
// they reach log output, so running a scan never writes the scanned
// identity to disk or terminals via logs.
package log
