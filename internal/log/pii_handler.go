package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// identityKeys contains attribute keys that always carry the scanned
// person's data and must never be logged in the clear.
var identityKeys = map[string]bool{
	// Identity profile attributes
	"name":    true,
	"email":   true,
	"phone":   true,
	"address": true,

	// Derived values that embed attributes verbatim
	"query":   true,
	"queries": true,
	"profile": true,
	"excerpt": true,
	"context": true,
	"snippet": true,
}

// piiPatterns contains regex patterns for values that look like PII.
// Values matching these patterns are masked regardless of key name, since
// page excerpts and provider snippets can surface them under any key.
var piiPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),

	// US-style phone numbers
	regexp.MustCompile(`\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),

	// SSN-shaped values
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),

	// Credit-card-shaped values
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***PII***"

// PIIHandler wraps an slog.Handler to mask personally identifiable
// information. It intercepts log records and masks attribute values whose
// key names an identity attribute or whose value looks like PII, before
// passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components keep accepting a plain *slog.Logger
type PIIHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewPIIHandler creates a PIIHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewPIIHandler(handler slog.Handler) *PIIHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PIIHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PIIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *PIIHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added,
// masked first.
func (h *PIIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &PIIHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *PIIHandler) WithGroup(name string) slog.Handler {
	return &PIIHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *PIIHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if identityKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if masked, changed := maskPII(a.Value.String()); changed {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// maskPII replaces PII-shaped substrings inside a value. Unlike key-based
// masking, this preserves the rest of the value (e.g. a URL around an
// embedded email address) so logs stay useful.
func maskPII(value string) (string, bool) {
	changed := false
	for _, pattern := range piiPatterns {
		if pattern.MatchString(value) {
			value = pattern.ReplaceAllString(value, MaskValue)
			changed = true
		}
	}
	return value, changed
}

// NewLogger creates a *slog.Logger with PII masking over a text handler.
//
// Parameters:
//   - w: the io.Writer for log output (typically os.Stderr)
//   - verbose: if true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	return slog.New(NewPIIHandler(slog.NewTextHandler(w, opts)))
}

// NewJSONLogger creates a *slog.Logger with PII masking over a JSON
// handler. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	return slog.New(NewPIIHandler(slog.NewJSONHandler(w, opts)))
}
