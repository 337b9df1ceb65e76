package model

import (
	"errors"
	"slices"
	"testing"
)

// TestNormalizeValue tests blank normalization.
func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty stays empty", "", ""},
		{"spaces become empty", "   ", ""},
		{"tabs and newlines become empty", "\t\n ", ""},
		{"text is unchanged", "Buy Shoes", "Buy Shoes"},
		{"surrounding whitespace is kept", " Buy ", " Buy "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeValue(tc.input); got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestDisplay tests the null display mapping.
func TestDisplay(t *testing.T) {
	t.Parallel()

	if got := Display(""); got != BlankDisplay {
		t.Errorf("got %q, expected %q", got, BlankDisplay)
	}
	if got := Display("Blog"); got != "Blog" {
		t.Errorf("got %q, expected %q", got, "Blog")
	}
}

// TestNewDataset tests dataset construction.
func TestNewDataset(t *testing.T) {
	t.Parallel()

	t.Run("normalizes blank values", func(t *testing.T) {
		t.Parallel()

		ds := NewDataset([]Record{
			{URL: "A", Pagetype: " ", Title: "", MetaDescription: "\t"},
		})

		r := ds.Record(0)
		if r.Pagetype != "" || r.Title != "" || r.MetaDescription != "" {
			t.Errorf("expected blank fields to be normalized, got %+v", r)
		}
	})

	t.Run("copies input records", func(t *testing.T) {
		t.Parallel()

		records := []Record{{URL: "A", Title: "x"}}
		ds := NewDataset(records)
		records[0].Title = "changed"

		if ds.Record(0).Title != "x" {
			t.Error("expected dataset to be unaffected by caller mutation")
		}

		out := ds.Records()
		out[0].Title = "changed"
		if ds.Record(0).Title != "x" {
			t.Error("expected Records to return a copy")
		}
	})

	t.Run("treats all fields as present by default", func(t *testing.T) {
		t.Parallel()

		ds := NewDataset(nil)
		for _, f := range AllFields {
			if !ds.Has(f) {
				t.Errorf("expected field %s to be present", f)
			}
		}
		if !ds.IsEmpty() {
			t.Error("expected empty dataset")
		}
	})

	t.Run("tracks explicit fields", func(t *testing.T) {
		t.Parallel()

		ds := NewDataset(nil, FieldURL, FieldTitle)
		if ds.Has(FieldMetaDescription) {
			t.Error("expected meta_description to be absent")
		}
		if got := ds.Fields(); !slices.Equal(got, []Field{FieldURL, FieldTitle}) {
			t.Errorf("got %v", got)
		}
	})
}

// TestDatasetOverview tests dataset-level statistics.
func TestDatasetOverview(t *testing.T) {
	t.Parallel()

	ds := NewDataset([]Record{
		{URL: "A", Pagetype: "Blog"},
		{URL: "A", Pagetype: "Product"},
		{URL: "B", Pagetype: ""},
		{URL: " ", Pagetype: "Blog"},
	})

	ov := ds.Overview()
	if ov.TotalURLs != 4 {
		t.Errorf("TotalURLs: got %d, expected 4", ov.TotalURLs)
	}
	if ov.UniqueURLs != 2 {
		t.Errorf("UniqueURLs: got %d, expected 2", ov.UniqueURLs)
	}
	if ov.PagetypeCount != 3 {
		t.Errorf("PagetypeCount: got %d, expected 3", ov.PagetypeCount)
	}
	if !slices.Equal(ov.Pagetypes, []string{"", "Blog", "Product"}) {
		t.Errorf("Pagetypes: got %v", ov.Pagetypes)
	}
}

// TestParseField tests field name parsing.
func TestParseField(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Field
	}{
		{"url", FieldURL},
		{"Title", FieldTitle},
		{"meta description", FieldMetaDescription},
		{"meta-description", FieldMetaDescription},
		{"meta", FieldMetaDescription},
		{"Page Type", FieldPagetype},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseField(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseField("body"); !errors.Is(err, ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	})
}

// TestFieldOther tests the cross-reference field.
func TestFieldOther(t *testing.T) {
	t.Parallel()

	if FieldTitle.Other() != FieldMetaDescription {
		t.Error("expected title to pair with meta_description")
	}
	if FieldMetaDescription.Other() != FieldTitle {
		t.Error("expected meta_description to pair with title")
	}
	if FieldURL.Other() != FieldURL {
		t.Error("expected non-content field to return itself")
	}
}
