package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// The optional cause keeps domain sentinels reachable through errors.Is.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap returns the error the failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    code,
		Message: err.Error(),
		cause:   err,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// UnprocessableEntity returns a new Failure for well-formed requests referencing entities that do not exist.
func UnprocessableEntity(err error) error {
	return wrap(http.StatusUnprocessableEntity, err)
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
	return wrap(http.StatusInternalServerError, err)
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// ConflictFrom returns a conflict Failure that keeps err as its cause.
func ConflictFrom(err error) error {
	return wrap(http.StatusConflict, err)
}

// ServiceUnavailable returns a new Failure for operations whose backing collaborator is not configured.
func ServiceUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
