package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidOperation indicates a well-formed request that would break the
	// non-negative quantity invariant. The message is shown to users verbatim.
	ErrInvalidOperation = errors.New("Cannot reduce quantity below 0") //nolint:staticcheck // user-facing message

	// ErrInvalidItem indicates the input violates item field constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrDuplicateName indicates another item already uses the name
	// (compared case-insensitively).
	ErrDuplicateName = errors.New("an item with this name already exists")

	// ErrStorage indicates the item store was unreachable or rejected a write.
	ErrStorage = errors.New("storage failure")
)

// ValidationError carries field-level messages keyed by JSON field name.
// It matches ErrInvalidItem under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when it holds at least one field error, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidItem.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrInvalidItem.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidItem
}
