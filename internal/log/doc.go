// Package log provides the slog setup of seoaudit.
//
// RedactingHandler wraps any slog.Handler and rewrites attributes before
// they are written:
//   - values of keys such as cookie, token or session_id are masked
//   - URL values lose the values of session and tracking query parameters
//     (sid, jsessionid, token, gclid and similar)
//   - long string values, such as meta descriptions, are truncated
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Warn("row skipped",
//	    "url", "https://example.com/cart?sid=42", // logged as sid=***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
