package errors

import "github.com/pkg/errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "order type 0x5a is not recognized".
	Message string

	// Code (required) is one of the ErrorCode values, e.g. "unrecognized_order_type".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error`, or any error it wraps, has a specific code.
// A BaseError matches when any of its details carries the code.
func ErrorCodeEquals(err error, code string) bool {
	var details *ErrorDetails
	if errors.As(err, &details) {
		return details.Code == code
	}

	var base *BaseError
	if errors.As(err, &base) {
		return base.IsAnyCodeEqual(code)
	}

	return false
}
