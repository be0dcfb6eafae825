package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is the marker every client-input failure in this package
// unwraps to. Callers that only care about "4xx vs 5xx" match on it; callers
// that need the exact kind match on the sentinels below.
var ErrInvalidQuery = errors.New("invalid list query")

var (
	ErrInvalidPage          = errors.New("invalid page")
	ErrInvalidPageSize      = errors.New("invalid page size")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	ErrInvalidFilterField   = errors.New("invalid filter field")
	ErrInvalidFilterValue   = errors.New("invalid filter value")
)

// ErrInternalConsistency signals a data-layer contract violation, currently
// only "more rows returned than requested". It is never caused by client
// input and maps to a 5xx at the boundary.
var ErrInternalConsistency = errors.New("internal consistency violation")

// ValidationError reports a single rejected query parameter. It keeps the
// field name and the raw value exactly as the client sent them so the
// boundary can produce a useful diagnostic.
type ValidationError struct {
	Kind  error
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q, value %q", e.Kind, e.Field, e.Value)
}

// Unwrap exposes both the kind sentinel and the ErrInvalidQuery marker.
func (e *ValidationError) Unwrap() []error { return []error{e.Kind, ErrInvalidQuery} }

func newValidationError(kind error, field, value string) error {
	return &ValidationError{Kind: kind, Field: field, Value: value}
}

// AsValidation extracts the structured form of a validation failure, if err
// is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
