package httperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPException is an application error that maps onto an HTTP response.
// HTTPCode, Identifier and Description are fixed per kind; only Message
// differs between instances.
type HTTPException interface {
	error
	HTTPCode() int
	Identifier() string
	Description() string
	Message() string
}

// Kind describes an error category. It can be used to create ad-hoc
// exceptions for categories that have no dedicated type.
type Kind struct {
	Code        int
	Identifier  string
	Description string
}

// New creates an exception of this kind with the given message
func (k Kind) New(message string) *Exception {
	return &Exception{kind: k, exception: exception{message: message}}
}

// Wrap creates an exception of this kind that keeps cause reachable via errors.Unwrap
func (k Kind) Wrap(cause error, message string) *Exception {
	return &Exception{kind: k, exception: exception{message: message, cause: cause}}
}

// exception holds the per-instance state shared by every concrete kind
type exception struct {
	message string
	cause   error
}

// Message returns the occurrence-specific message, or "" when none was given
func (e exception) Message() string {
	return e.message
}

func (e exception) Unwrap() error {
	return e.cause
}

func (e exception) format(identifier string) string {
	switch {
	case e.message != "" && e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", identifier, e.message, e.cause)
	case e.message != "":
		return identifier + ": " + e.message
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", identifier, e.cause)
	default:
		return identifier
	}
}

// Exception is a generic exception built from a Kind
type Exception struct {
	kind Kind
	exception
}

func (e *Exception) HTTPCode() int       { return e.kind.Code }
func (e *Exception) Identifier() string  { return e.kind.Identifier }
func (e *Exception) Description() string { return e.kind.Description }
func (e *Exception) Error() string       { return e.format(e.kind.Identifier) }

// As finds the first HTTPException in err's chain
func As(err error) (HTTPException, bool) {
	if err == nil {
		return nil, false
	}
	var httpErr HTTPException
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status for err. Errors that are not
// exceptions map to 500.
func StatusCode(err error) int {
	if httpErr, ok := As(err); ok {
		return httpErr.HTTPCode()
	}
	return http.StatusInternalServerError
}
