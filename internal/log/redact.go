package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// sensitiveKeys contains attribute keys that should always be masked.
var sensitiveKeys = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"access_token":  true,
	"session":       true,
	"session_id":    true,
	"sessionid":     true,
	"sid":           true,
}

// sensitiveParams lists query parameters masked inside URL values.
// Crawl exports frequently carry session and tracking identifiers in
// page addresses.
var sensitiveParams = map[string]bool{
	"sid":          true,
	"sessionid":    true,
	"session_id":   true,
	"phpsessid":    true,
	"jsessionid":   true,
	"token":        true,
	"access_token": true,
	"auth":         true,
	"key":          true,
	"api_key":      true,
	"apikey":       true,
	"signature":    true,
	"sig":          true,
	"password":     true,
	"gclid":        true,
	"fbclid":       true,
	"msclkid":      true,
}

// sensitivePatterns contains regex patterns that indicate sensitive values.
var sensitivePatterns = []*regexp.Regexp{
	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// AWS access keys
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
}

// jsessionPath matches the ;jsessionid= path parameter some servers append.
var jsessionPath = regexp.MustCompile(`(?i);jsessionid=[^?#/]*`)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// DefaultMaxValueLength is the rune count after which string values are
// truncated. Record values such as meta descriptions can be long.
const DefaultMaxValueLength = 160

// RedactingHandler wraps an slog.Handler to mask sensitive information and
// shorten long values. URL attributes keep their path but lose the values
// of session and tracking query parameters.
type RedactingHandler struct {
	handler slog.Handler
	maxLen  int
}

// HandlerOption configures a RedactingHandler.
type HandlerOption func(*RedactingHandler)

// WithMaxValueLength sets the rune count after which string values are
// truncated. Zero or a negative value disables truncation.
func WithMaxValueLength(n int) HandlerOption {
	return func(h *RedactingHandler) {
		h.maxLen = n
	}
}

// NewRedactingHandler creates a new RedactingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactingHandler(handler slog.Handler, opts ...HandlerOption) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &RedactingHandler{handler: handler, maxLen: DefaultMaxValueLength}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are sanitized before being added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = h.sanitizeAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(sanitized), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

func (h *RedactingHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitized[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	value := a.Value.String()
	if isSensitiveValue(value) {
		return slog.String(a.Key, MaskValue)
	}
	if looksLikeURL(value) {
		value = RedactURL(value)
	}
	return slog.String(a.Key, truncate(value, h.maxLen))
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func looksLikeURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// RedactURL masks the values of sensitive query parameters and of a
// ;jsessionid path parameter. Parameter order is kept. Strings that do not
// parse as URLs are returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	raw = jsessionPath.ReplaceAllString(raw, ";jsessionid="+MaskValue)
	if u.RawQuery == "" {
		return raw
	}

	base, rest, _ := strings.Cut(raw, "?")
	query, fragment, hasFragment := strings.Cut(rest, "#")

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		key, _, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		if sensitiveParams[strings.ToLower(name)] {
			pairs[i] = key + "=" + MaskValue
		}
	}

	redacted := base + "?" + strings.Join(pairs, "&")
	if hasFragment {
		redacted += "#" + fragment
	}
	return redacted
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}

// NewLogger creates a new slog.Logger writing redacted text records.
// If verbose is true, the level is Debug; otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger writing redacted JSON records.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
