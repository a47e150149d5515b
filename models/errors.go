package models

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Error codes used in diagnostics and CLI exit reporting.
const (
	ErrCodeInputNotFound  = "INPUT_NOT_FOUND"
	ErrCodeParse          = "PARSE_FAILED"
	ErrCodeMalformedLink  = "MALFORMED_LINK"
	ErrCodeUnreconcilable = "UNRECONCILABLE_LIST"
	ErrCodeInvalidConfig  = "INVALID_CONFIG"
	ErrCodeRender         = "RENDER_FAILED"
)

// ConvertError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ConvertError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ConvertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError creates a new ConvertError.
func NewConvertError(code, message string, err error) *ConvertError {
	return &ConvertError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err, or any error combined into it, is a
// ConvertError carrying code.
func HasCode(err error, code string) bool {
	for _, e := range multierr.Errors(err) {
		var ce *ConvertError
		if errors.As(e, &ce) && ce.Code == code {
			return true
		}
	}
	return false
}
