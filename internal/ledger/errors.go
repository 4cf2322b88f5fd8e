package ledger

import (
	"errors"  // Sentinel errors
	"strings" // Message joining
)

var (
	// ErrNotFound reports a user or record that does not exist for the caller
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a budget that already exists for the same category and period
	ErrConflict = errors.New("conflict")
)

// FieldError names one offending input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation. It is always returned
// before the store is touched.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records a failure for field
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns e only when at least one field failed
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// InternalError wraps a store failure that aborted the whole operation
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// internal wraps err unless it already belongs to the taxonomy
func internal(op string, err error) error {
	var ve *ValidationError
	var ie *InternalError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.As(err, &ve) || errors.As(err, &ie) {
		return err // Already classified
	}
	return &InternalError{Op: op, Err: err}
}
