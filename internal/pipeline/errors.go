package pipeline

import (
	"errors"
	"fmt"

	"github.com/nao1215/seoaudit/internal/model"
)

// ErrPanic is wrapped by a FieldError when an analysis panicked.
var ErrPanic = errors.New("analysis panicked")

// MissingFieldResultError reports a requested content field that the
// dataset does not carry. The field result is nil; the run continues.
type MissingFieldResultError struct {
	Field model.Field
}

// Error implements error.
func (e *MissingFieldResultError) Error() string {
	return fmt.Sprintf("field %s is not mapped in the dataset", e.Field)
}

// FieldError attributes an analysis failure to its content field.
type FieldError struct {
	Field model.Field
	Err   error
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Field.Label(), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}
