package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the client is allowed to see, carrying its HTTP status code.
// Kind optionally carries a machine-readable classification callers can branch on.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest exposes err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// InternalError exposes err as a 500 with its message intact. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// Kinded returns a new Failure tagged with kind.
func Kinded(code int, kind, message string) error {
	return &Failure{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// GetCode returns the status code of the first Failure in err's chain, or 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of an error interface, or an empty string when it has none.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind string) bool {
	return kind != "" && GetKind(err) == kind
}
