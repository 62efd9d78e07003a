package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return strings.Join(msgs, "; ")
}

// FieldErrors maps field names to their message. The first error reported for a field wins.
func (err ValidationError) FieldErrors() map[string]string {
	fldErrs := make(map[string]string, len(err.Fields))
	for _, fld := range err.Fields {
		if _, ok := fldErrs[fld.Field]; !ok {
			fldErrs[fld.Field] = fld.Error
		}
	}
	return fldErrs
}

// HasField reports whether `field` failed validation.
func (err ValidationError) HasField(field string) bool {
	for _, fld := range err.Fields {
		if fld.Field == field {
			return true
		}
	}
	return false
}

// IsValidationError reports whether the cause of err is a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	vErr, ok := errors.Cause(err).(*ValidationError)
	return vErr, ok
}
