package domain

import "errors"

// Code classifies an application error. The HTTP layer owns the mapping
// from codes to status codes.
type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodeInvalidReference Code = "invalid_reference"
	CodeUnprocessable    Code = "unprocessable"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeUnauthorized     Code = "unauthorized"
	CodeInternal         Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

func WrapError(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, Err: cause}
}

func InvalidInput(message string) error     { return NewError(CodeInvalidInput, message) }
func InvalidReference(message string) error { return NewError(CodeInvalidReference, message) }
func Unprocessable(message string) error    { return NewError(CodeUnprocessable, message) }
func NotFound(message string) error         { return NewError(CodeNotFound, message) }
func Conflict(message string) error         { return NewError(CodeConflict, message) }
func Unauthorized(message string) error     { return NewError(CodeUnauthorized, message) }

// CodeOf extracts the code from err, defaulting to internal so that
// store-level failures surface as generic 500s.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	return CodeInternal
}
