package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the one error type that crosses package boundaries. Code is
// stable and machine readable; Message is safe to show to the user.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeTransport       = "TRANSPORT_ERROR"
)

// ValidationError covers both local input checks and a backend `{error: true}`
// rejection; either way the message is meant for the user.
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// ThirdPartyError is a failing service other than the storefront backend.
func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

// TransportError is any failure to get a usable answer from the storefront backend.
func TransportError(message string) *AppError {
	return NewAppError(ErrCodeTransport, message, http.StatusBadGateway)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

// FromUpstreamStatus maps a non-2xx answer of the storefront backend. message
// is the backend's own text, if it sent one. 5xx is a transport failure: the
// backend could not answer, as opposed to refusing.
func FromUpstreamStatus(status int, message string) *AppError {

	var appErr *AppError

	switch {
	case status == http.StatusUnauthorized:
		appErr = UnauthorizedError(orDefault(message, "Authentication required"))
	case status == http.StatusForbidden:
		appErr = ForbiddenError(orDefault(message, "Not allowed"))
	case status == http.StatusNotFound:
		appErr = NotFoundError(orDefault(message, "Not found"))
	case status == http.StatusTooManyRequests:
		appErr = TooManyRequestsError(orDefault(message, "Too many requests"))
	case status >= 400 && status < 500:
		appErr = ValidationError(orDefault(message, http.StatusText(status)))
	default:
		appErr = TransportError(fmt.Sprintf("Storefront returned status %d", status))
	}

	return appErr.WithDetail(fmt.Sprintf("upstream status %d", status))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}

// MessageOf is the text to show the user for err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	if appErr, ok := IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
