package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlStyle is the inline stylesheet of HTML reports.
const htmlStyle = "body{font-family:system-ui,sans-serif;max-width:1100px;margin:0 auto;padding:1rem;color:#1c1917;} " +
	"table{width:100%;border-collapse:collapse;font-size:0.85rem;margin-bottom:1rem;} " +
	"th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;} " +
	"thead th{background:#f1f5f9;font-weight:700;} " +
	"blockquote{border-left:4px solid #92400e;margin:0.5rem 0;padding:0.25rem 0.75rem;background:#fef3c7;} " +
	"pre{background:#f5f5f4;padding:0.5rem;overflow-x:auto;}"

// HTMLWriter outputs the Markdown report rendered to a standalone HTML page.
type HTMLWriter struct {
	baseWriter

	// markdownOpts configure the intermediate Markdown report.
	markdownOpts []MarkdownWriterOption

	// title is the document title.
	title string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithHTMLTitle sets the document title.
func WithHTMLTitle(title string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.title = title
	}
}

// WithHTMLMarkdownOptions sets the options of the intermediate Markdown report.
func WithHTMLMarkdownOptions(opts ...MarkdownWriterOption) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.markdownOpts = opts
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		title:      "SEO Content Audit Report",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report as HTML.
func (w *HTMLWriter) Write(run *model.RunResult) (int, error) {
	var src bytes.Buffer
	if _, err := NewMarkdownWriter(&src, w.markdownOpts...).Write(run); err != nil {
		return 0, fmt.Errorf("render markdown: %w", err)
	}

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(src.Bytes(), &content); err != nil {
		return 0, fmt.Errorf("markdown convert: %w", err)
	}

	page := "<!doctype html><html><head><meta charset='utf-8'><title>" + w.title + "</title>" +
		"<style>" + htmlStyle + "</style></head><body>" +
		content.String() +
		"</body></html>\n"

	return io.WriteString(w.output, page)
}
