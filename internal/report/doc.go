// Package report renders analysis run results.
//
// This package contains writers for different output formats:
//   - SummaryWriter: plain text summary for terminals and analysis_summary.txt
//   - MarkdownWriter: Markdown document with tables, alerts and charts
//   - HTMLWriter: the Markdown report rendered to a standalone HTML page
//   - JSONWriter: structured JSON output for tool integration
//
// Writers only read computed results; they never recompute statistics.
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
