package common

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable         = errors.New("store unavailable")
	ErrInvalidImage             = errors.New("invalid image payload")
	ErrCategoryDeletionDisabled = errors.New("category deletion is disabled")
	ErrCategoryInUse            = errors.New("category is referenced by products")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrConflict                 = errors.New("conflict")
)

// NotFoundError reports a domain-level lookup miss for the named resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NotFound builds a NotFoundError for resource ("category", "variant", "product", "image", "admin").
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// IsNotFound reports whether err is a NotFoundError. With a non-empty
// resource the error must also name that resource.
func IsNotFound(err error, resource string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return resource == "" || nf.Resource == resource
}

// InvalidIdentifierError is returned when an external identifier is not well formed.
type InvalidIdentifierError struct {
	Field string
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func InvalidIdentifier(field, value string) error {
	return &InvalidIdentifierError{Field: field, Value: value}
}

func IsInvalidIdentifier(err error) bool {
	var ie *InvalidIdentifierError
	return errors.As(err, &ie)
}
