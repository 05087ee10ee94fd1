package inventory

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks a provider record that cannot be normalized.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedError reports which field of which resource was unusable.
type MalformedError struct {
	Resource string
	Field    string
	Reason   string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: field %s: %s", e.Resource, e.Field, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedRecord
}
