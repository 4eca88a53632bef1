package apperror

import "fmt"

const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeUpstreamFailed  = "UPSTREAM_FAILED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError is a domain error that knows how it should be reported over HTTP.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func New(code, message string, status int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// Wrap builds a new AppError around an underlying cause.
func Wrap(err error, code, message string, status int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of e carrying err, keeping e matchable via errors.Is.
func (e *AppError) WithCause(err error) error {
	return &wrapped{sentinel: e, cause: err}
}

type wrapped struct {
	sentinel *AppError
	cause    error
}

func (w *wrapped) Error() string {
	return fmt.Sprintf("%s: %v", w.sentinel.Error(), w.cause)
}

func (w *wrapped) Unwrap() []error {
	return []error{w.sentinel, w.cause}
}
