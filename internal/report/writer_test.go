package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/pipeline"
	"golang.org/x/text/language"
)

// createTestRun analyzes the Blog/Product example dataset.
func createTestRun(t *testing.T) *model.RunResult {
	t.Helper()

	ds := model.NewDataset([]model.Record{
		{URL: "A", Pagetype: "Blog", Title: "Buy Shoes Online", MetaDescription: "Shoes for everyone"},
		{URL: "B", Pagetype: "Blog", Title: "Buy Shoes Online", MetaDescription: "Cheap shoes"},
		{URL: "C", Pagetype: "Product", Title: "Unique Title", MetaDescription: "Shoes for everyone"},
	})

	o := pipeline.NewOrchestrator(
		pipeline.WithOrchestratorLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		pipeline.WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
	run, err := o.Run(context.Background(), model.RunRequest{
		Dataset: ds,
		Config:  model.DefaultAnalysisConfig(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return run
}

// assertContains fails for every expected substring missing from output.
func assertContains(t *testing.T, output string, expected ...string) {
	t.Helper()

	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("expected output to contain %q\noutput:\n%s", s, output)
		}
	}
}

// TestSummaryWriter tests the plain text summary.
func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSummaryWriter(&buf).Write(createTestRun(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		assertContains(t, buf.String(),
			"SEO Content Analysis Summary Report\n===================================\n",
			"Analysis Date: 2024-05-01 12:00:00",
			"Overall Statistics\n------------------\n",
			"Total URLs analyzed: 3\nUnique URLs: 3\nTotal page types: 2\n",
			"Title Analysis\n--------------\n",
			"Total titles: 3\nUnique titles: 2\nDuplicate titles: 2\n",
			"Number of unique duplicate titles: 1\n",
			"Most repeated title: 2 occurrences",
			"Buy Shoes Online",
			"Meta Description Analysis\n-------------------------\n",
			"Most repeated meta description: 2 occurrences",
			"Analysis by Page Type\n---------------------\n",
		)
	})

	t.Run("writes pagetypes in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf).Write(createTestRun(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		assertContains(t, output,
			"Page Type: Blog\nTotal URLs: 2\nDuplicate Titles: 2 (100.0%)\nDuplicate Meta Descriptions: 0\n",
			"Page Type: Product\nTotal URLs: 1\nDuplicate Titles: 0\nDuplicate Meta Descriptions: 0\n",
		)
		if strings.Index(output, "Page Type: Blog") > strings.Index(output, "Page Type: Product") {
			t.Error("expected Blog before Product")
		}
	})

	t.Run("formats numbers with thousands separators", func(t *testing.T) {
		t.Parallel()

		run := &model.RunResult{Overview: model.Overview{TotalURLs: 1234567, UniqueURLs: 1200}}

		var en, de bytes.Buffer
		if _, err := NewSummaryWriter(&en).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSummaryWriter(&de, WithLanguage(language.German)).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertContains(t, en.String(), "Total URLs analyzed: 1,234,567", "Unique URLs: 1,200")
		assertContains(t, de.String(), "Total URLs analyzed: 1.234.567")
	})

	t.Run("lists warnings and failures", func(t *testing.T) {
		t.Parallel()

		run := &model.RunResult{}
		run.AddWarning(model.ErrEmptyDataset.Error())
		run.AddFailure(model.FieldTitle, errors.New("boom"))

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		assertContains(t, output,
			"[!] dataset contains no records",
			"[x] Title: boom",
		)
		if strings.Contains(output, "Analysis by Page Type") {
			t.Error("expected no pagetype section without results")
		}
	})

	t.Run("marks timed out fields", func(t *testing.T) {
		t.Parallel()

		run := &model.RunResult{}
		result := model.NewAnalysisResult(model.FieldTitle)
		result.TimedOut = true
		run.SetResult(model.FieldTitle, result)

		var buf bytes.Buffer
		if _, err := NewSummaryWriter(&buf).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "Status: TIMED OUT (partial results)")
	})
}

// TestMarkdownWriter tests the Markdown report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes the report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestRun(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertContains(t, buf.String(),
			"# SEO Content Audit Report",
			"## Title Analysis",
			"## Meta Description Analysis",
			"### Duplicate Titles",
			"### Duplication by Page Type",
			"### Common 2-word Phrases",
			"Buy Shoes Online",
			"buy shoes",
			"[!CAUTION]",
			"```mermaid",
			"Blog: 2 duplicate titles",
			"https://github.com/nao1215/seoaudit",
		)
	})

	t.Run("truncates long tables", func(t *testing.T) {
		t.Parallel()

		result := model.NewAnalysisResult(model.FieldTitle)
		result.Rollup = &model.Rollup{
			Field: model.FieldTitle,
			Rows: []model.RollupRow{
				{Value: "a", DuplicateCount: 3},
				{Value: "b", DuplicateCount: 2},
				{Value: "c", DuplicateCount: 2},
			},
		}
		run := &model.RunResult{}
		run.SetResult(model.FieldTitle, result)

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, WithMaxRows(1)).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "Showing 1 of 3 rows")
	})

	t.Run("shows a tip without duplicates", func(t *testing.T) {
		t.Parallel()

		run := &model.RunResult{}
		run.SetResult(model.FieldMetaDescription, model.NewAnalysisResult(model.FieldMetaDescription))

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "[!TIP]", "No duplicate meta descriptions found.")
	})
}

// TestCell tests table cell escaping.
func TestCell(t *testing.T) {
	t.Parallel()

	if got := cell("a|b\nc"); got != `a\|b c` {
		t.Errorf("got %q", got)
	}
}

// TestHTMLWriter tests the HTML report.
func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewHTMLWriter(&buf, WithHTMLTitle("Audit")).Write(createTestRun(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "<!doctype html>") {
		t.Errorf("expected an HTML document, got %q", output[:min(len(output), 40)])
	}
	assertContains(t, output,
		"<title>Audit</title>",
		"<h1>SEO Content Audit Report</h1>",
		"<table>",
		"Buy Shoes Online",
	)
}

// TestJSONWriter tests the JSON writers.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestRun(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		for _, key := range []string{"generated_at", "overview", "title", "meta_description"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("expected key %q", key)
			}
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(&model.RunResult{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected a single line, got %q", buf.String())
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(&model.RunResult{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertContains(t, buf.String(), "\n>\t\"generated_at\"")
	})

	t.Run("full writer includes version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "v1.2.3", WithPrettyPrint()).Write(createTestRun(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("got version %q", decoded.Version)
		}
		if decoded.Report == nil || decoded.Report.Title == nil || decoded.Report.Title.Stats.DuplicateRecords != 2 {
			t.Errorf("got report %+v", decoded.Report)
		}
		if len(decoded.Summary) != 2 {
			t.Fatalf("got %d summary lines, want 2", len(decoded.Summary))
		}
		title := decoded.Summary[0]
		if title.Field != model.FieldTitle || title.MostRepeated != "Buy Shoes Online" || title.MostRepeatedCount != 2 {
			t.Errorf("got title summary %+v", title)
		}
		if title.Level != model.LevelSevere.String() {
			t.Errorf("got level %q, want %q", title.Level, model.LevelSevere.String())
		}
	})
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSummaryWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestRun(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		n, err := NewMultiWriter().Write(&model.RunResult{})
		if err != nil || n != 0 {
			t.Errorf("got %d, %v", n, err)
		}
	})
}

// TestParseFormat tests format parsing.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Format
	}{
		{"text", FormatText},
		{"TXT", FormatText},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"json", FormatJSON},
		{" html ", FormatHTML},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})
}

// TestNewWriter tests writer selection.
func TestNewWriter(t *testing.T) {
	t.Parallel()

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, err := NewWriter(format, &buf, "dev")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := w.Write(&model.RunResult{}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("expected output")
			}
		})
	}

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()
		if _, err := NewWriter("pdf", io.Discard, "dev"); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
	})
}
