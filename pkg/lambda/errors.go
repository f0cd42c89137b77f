package lambda

import (
	"errors"
	"fmt"
)

// Body decoding error types
var (
	ErrInvalidBase64   = errors.New("body is not valid base64")
	ErrInvalidUTF8     = errors.New("decoded body is not valid UTF-8")
	ErrInvalidJSON     = errors.New("body is not valid JSON")
	ErrNotJSONObject   = errors.New("JSON body is not an object")
	ErrMalformedForm   = errors.New("malformed urlencoded body")
	ErrUnsupportedBody = errors.New("unsupported content type")

	errTrailingData = errors.New("unexpected data after top-level value")
)

// BodyError represents a body decoding error with additional context
type BodyError struct {
	Op  string // Operation that failed (e.g., "Decoded", "FromJSON")
	Err error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("lambda body %s failed: %v", e.Op, e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

func newBodyError(op string, sentinel error, detail string) *BodyError {
	if detail == "" {
		return &BodyError{Op: op, Err: sentinel}
	}
	return &BodyError{Op: op, Err: fmt.Errorf("%w: %s", sentinel, detail)}
}

// IsDecodeError returns true if err came from decoding a request body
func IsDecodeError(err error) bool {
	var bodyErr *BodyError
	return errors.As(err, &bodyErr)
}
