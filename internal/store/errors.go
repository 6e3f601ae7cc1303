package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation references an unknown incident id.
// A repeated Remove of the same id hits this too; removal is deliberately not
// idempotent.
var ErrNotFound = errors.New("incident not found")

// ValidationError rejects a draft or patch and names the offending fields.
// The mutation it rejects never reaches the collection or the slot.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// FlushError reports a failed durable write after an in-memory mutation has
// already been applied. The collection and the slot are out of sync until the
// next successful flush; callers should surface this rather than swallow it.
type FlushError struct {
	Err error
}

func (e *FlushError) Error() string {
	return fmt.Sprintf("incident collection changed but durable flush failed: %v", e.Err)
}

func (e *FlushError) Unwrap() error {
	return e.Err
}
