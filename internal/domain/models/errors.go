package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrForbidden is returned when a caller tries to mutate a read-only resource,
// such as a predefined block type.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized covers bad credentials and invalid or revoked tokens.
var ErrUnauthorized = errors.New("unauthorized")

// FieldError describes a single violated rule. Field is a path such as
// "cards[1].title"; it is empty for document level problems.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated rule of a payload or document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// OrNil returns nil when nothing was collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError with a single violation.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FromOzzo flattens ozzo-validation errors into a ValidationError. Keys of
// nested structs are joined with "." and slice indexes rendered as "[i]".
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return NewValidationError("", err.Error())
	}

	out := &ValidationError{}
	flattenOzzo(out, "", errs)
	return out.OrNil()
}

func flattenOzzo(out *ValidationError, prefix string, errs validation.Errors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := joinPath(prefix, k)

		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			flattenOzzo(out, path, nested)
			continue
		}
		out.Add(path, errs[k].Error())
	}
}

func joinPath(prefix, key string) string {
	if isIndex(key) {
		return prefix + "[" + key + "]"
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func isIndex(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
