package model

import (
	"fmt"
	"strings"
)

// Field identifies one of the canonical columns of a Record.
type Field string

const (
	// FieldURL is the page address. Required.
	FieldURL Field = "url"

	// FieldTitle is the page title. Required.
	FieldTitle Field = "title"

	// FieldMetaDescription is the meta description. Required.
	FieldMetaDescription Field = "meta_description"

	// FieldPagetype is the page classification. Optional; when it is not
	// mapped every record falls into the blank category.
	FieldPagetype Field = "pagetype"
)

// AllFields lists the canonical fields in mapping priority order.
var AllFields = []Field{FieldURL, FieldTitle, FieldMetaDescription, FieldPagetype}

// RequiredFields lists the fields that must be mapped before a run.
var RequiredFields = []Field{FieldURL, FieldTitle, FieldMetaDescription}

// ContentFields lists the fields that can be analyzed for duplication.
var ContentFields = []Field{FieldTitle, FieldMetaDescription}

// String returns the canonical field name.
func (f Field) String() string {
	return string(f)
}

// IsContent reports whether the field is an analyzable content field.
func (f Field) IsContent() bool {
	return f == FieldTitle || f == FieldMetaDescription
}

// Other returns the opposite content field. It is used for the
// cross-reference column of rollup and detail tables.
// Non-content fields return themselves.
func (f Field) Other() Field {
	switch f {
	case FieldTitle:
		return FieldMetaDescription
	case FieldMetaDescription:
		return FieldTitle
	default:
		return f
	}
}

// Label returns the human-readable name used in reports and table headers.
func (f Field) Label() string {
	switch f {
	case FieldURL:
		return "URL"
	case FieldTitle:
		return "Title"
	case FieldMetaDescription:
		return "Meta Description"
	case FieldPagetype:
		return "Pagetype"
	default:
		return string(f)
	}
}

// Plural returns the plural label, e.g. "Titles".
func (f Field) Plural() string {
	return f.Label() + "s"
}

// ParseField converts a user supplied name into a Field.
// Matching ignores case, and accepts spaces or dashes in place of underscores.
func ParseField(s string) (Field, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "url":
		return FieldURL, nil
	case "title", "titles":
		return FieldTitle, nil
	case "meta_description", "meta_descriptions", "meta", "description":
		return FieldMetaDescription, nil
	case "pagetype", "page_type":
		return FieldPagetype, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}
