package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// ConflictWithCause is Conflict keeping the store error reachable through errors.Unwrap.
func ConflictWithCause(message string, cause error) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		cause:   cause,
	}
}

// ParentNotFound reports a foreign key that does not resolve to an existing row.
type ParentNotFound struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (e *ParentNotFound) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Kind, e.ID)
}

// NewParentNotFound returns a ParentNotFound for the given parent kind and id.
func NewParentNotFound(kind, id string) error {
	return &ParentNotFound{Kind: kind, ID: id}
}

// IsParentNotFound reports whether err is a ParentNotFound and returns it.
func IsParentNotFound(err error) (*ParentNotFound, bool) {
	var parent *ParentNotFound
	if errors.As(err, &parent) {
		return parent, true
	}

	return nil, false
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	if _, ok := IsParentNotFound(err); ok {
		return http.StatusBadRequest
	}

	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
