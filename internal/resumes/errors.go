package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist or is not owned by the caller.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates a mutating operation without a caller identity.
	ErrUnauthenticated = errors.New("user not authenticated")
)

// FieldError describes a validation failure on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures. It unwraps to ErrInvalidInput
// so handlers can map it with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return e.Fields[0].Field + ": " + e.Fields[0].Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
