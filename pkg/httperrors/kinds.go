package httperrors

import "net/http"

// DependencyError reports that an action this request depended on failed.
type DependencyError struct {
	exception
}

// NewDependencyError creates a DependencyError. An empty message means none.
func NewDependencyError(message string) *DependencyError {
	return &DependencyError{exception{message: message}}
}

// WrapDependencyError creates a DependencyError around cause
func WrapDependencyError(cause error, message string) *DependencyError {
	return &DependencyError{exception{message: message, cause: cause}}
}

func (DependencyError) HTTPCode() int { return http.StatusFailedDependency }

func (DependencyError) Identifier() string { return "B_FAILED_DEPENDENCY" }

func (DependencyError) Description() string {
	return "The method could not be performed on the resource because the requested action depended on another " +
		"action and that action failed."
}

func (e DependencyError) Error() string { return e.format(e.Identifier()) }

// FailedRollbackError reports that a rollback, attempted after a failure, failed as well.
type FailedRollbackError struct {
	exception
}

// NewFailedRollbackError creates a FailedRollbackError. An empty message means none.
func NewFailedRollbackError(message string) *FailedRollbackError {
	return &FailedRollbackError{exception{message: message}}
}

// WrapFailedRollbackError creates a FailedRollbackError around cause
func WrapFailedRollbackError(cause error, message string) *FailedRollbackError {
	return &FailedRollbackError{exception{message: message, cause: cause}}
}

func (FailedRollbackError) HTTPCode() int { return http.StatusInternalServerError }

func (FailedRollbackError) Identifier() string { return "B_FAILED_ROLLBACK" }

func (FailedRollbackError) Description() string {
	return "The server tried to satisfy client's request and failed to do so. Because of that server tried to " +
		"perform a rollback to prevent data leakage and again failed to do so."
}

func (e FailedRollbackError) Error() string { return e.format(e.Identifier()) }

// BadRequestError reports a request the server could not understand
type BadRequestError struct {
	exception
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{exception{message: message}}
}

func WrapBadRequestError(cause error, message string) *BadRequestError {
	return &BadRequestError{exception{message: message, cause: cause}}
}

func (BadRequestError) HTTPCode() int      { return http.StatusBadRequest }
func (BadRequestError) Identifier() string { return "B_BAD_REQUEST" }
func (BadRequestError) Description() string {
	return "The server could not understand the request due to invalid syntax or invalid parameters."
}
func (e BadRequestError) Error() string { return e.format(e.Identifier()) }

// UnauthorizedError reports a request without valid credentials
type UnauthorizedError struct {
	exception
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{exception{message: message}}
}

func (UnauthorizedError) HTTPCode() int      { return http.StatusUnauthorized }
func (UnauthorizedError) Identifier() string { return "B_UNAUTHORIZED" }
func (UnauthorizedError) Description() string {
	return "The request lacks valid authentication credentials for the target resource."
}
func (e UnauthorizedError) Error() string { return e.format(e.Identifier()) }

// ForbiddenError reports an authenticated caller without access
type ForbiddenError struct {
	exception
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{exception{message: message}}
}

func (ForbiddenError) HTTPCode() int      { return http.StatusForbidden }
func (ForbiddenError) Identifier() string { return "B_FORBIDDEN" }
func (ForbiddenError) Description() string {
	return "The client does not have access rights to the requested resource."
}
func (e ForbiddenError) Error() string { return e.format(e.Identifier()) }

// NotFoundError reports a missing resource
type NotFoundError struct {
	exception
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{exception{message: message}}
}

func (NotFoundError) HTTPCode() int      { return http.StatusNotFound }
func (NotFoundError) Identifier() string { return "B_NOT_FOUND" }
func (NotFoundError) Description() string {
	return "The server can not find the requested resource."
}
func (e NotFoundError) Error() string { return e.format(e.Identifier()) }

// InternalError is the catch-all for failures with no more specific kind.
// Errors that are not exceptions are reported with this kind at the boundary.
type InternalError struct {
	exception
}

func NewInternalError(message string) *InternalError {
	return &InternalError{exception{message: message}}
}

func WrapInternalError(cause error, message string) *InternalError {
	return &InternalError{exception{message: message, cause: cause}}
}

func (InternalError) HTTPCode() int      { return http.StatusInternalServerError }
func (InternalError) Identifier() string { return "B_INTERNAL_ERROR" }
func (InternalError) Description() string {
	return "The server has encountered a situation it does not know how to handle."
}
func (e InternalError) Error() string { return e.format(e.Identifier()) }

// Kinds raised by transport middleware ahead of any handler
var (
	TooManyRequests = Kind{
		Code:        http.StatusTooManyRequests,
		Identifier:  "B_TOO_MANY_REQUESTS",
		Description: "The user has sent too many requests in a given amount of time.",
	}
	PayloadTooLarge = Kind{
		Code:        http.StatusRequestEntityTooLarge,
		Identifier:  "B_PAYLOAD_TOO_LARGE",
		Description: "The request entity is larger than limits defined by the server.",
	}
	UnsupportedMediaType = Kind{
		Code:        http.StatusUnsupportedMediaType,
		Identifier:  "B_UNSUPPORTED_MEDIA_TYPE",
		Description: "The media format of the requested data is not supported by the server.",
	}
)

var (
	_ HTTPException = (*DependencyError)(nil)
	_ HTTPException = (*FailedRollbackError)(nil)
	_ HTTPException = (*BadRequestError)(nil)
	_ HTTPException = (*UnauthorizedError)(nil)
	_ HTTPException = (*ForbiddenError)(nil)
	_ HTTPException = (*NotFoundError)(nil)
	_ HTTPException = (*InternalError)(nil)
	_ HTTPException = (*Exception)(nil)
)
