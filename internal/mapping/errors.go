package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/seoaudit/internal/model"
)

// ErrUnknownColumn is returned when an override names a column that is not
// present in the input.
var ErrUnknownColumn = errors.New("unknown column")

// MissingMappingError reports the required fields left without a column.
type MissingMappingError struct {
	// Fields lists the unmapped required fields in canonical order.
	Fields []model.Field

	// Columns lists the available input columns, for diagnostics.
	Columns []string
}

// Error implements the error interface.
func (e *MissingMappingError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.String()
	}
	msg := fmt.Sprintf("missing column mapping for required field(s): %s", strings.Join(names, ", "))
	if len(e.Columns) > 0 {
		msg += fmt.Sprintf(" (available columns: %s)", strings.Join(e.Columns, ", "))
	}
	return msg
}
