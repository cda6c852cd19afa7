package errs

import (
	"errors"
	"net/http"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("resource not found")
	ErrIO                = errors.New("export storage failure")
	ErrForbidden         = errors.New("access to this export is forbidden")
	ErrNotReady          = errors.New("export is not yet available for download")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// statusOrder fixes the lookup order of StatusCode, so an error wrapping
// several sentinels always gets the status of the first one listed.
var statusOrder = []error{
	ErrForbidden,
	ErrNotFound,
	ErrNotReady,
	ErrValidation,
	ErrUnsupportedFormat,
	ErrIO,
}

var ErrStatusMap = map[error]int{
	ErrValidation:        http.StatusUnprocessableEntity,
	ErrUnsupportedFormat: http.StatusUnprocessableEntity,
	ErrNotFound:          http.StatusNotFound,
	ErrNotReady:          http.StatusNotFound,
	ErrForbidden:         http.StatusForbidden,
	ErrIO:                http.StatusInternalServerError,
}

// StatusCode maps an error onto an HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	for _, known := range statusOrder {
		if errors.Is(err, known) {
			return ErrStatusMap[known]
		}
	}
	return http.StatusInternalServerError
}

// FieldError carries field level validation detail.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return ErrValidation.Error()
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a validation error for a single field.
func Invalid(field, reason string) error {
	return &FieldError{Fields: map[string]string{field: reason}}
}

// Fields returns the field level detail of a validation error, if any.
func Fields(err error) map[string]string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}
