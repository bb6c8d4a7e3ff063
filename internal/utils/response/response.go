package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/go-playground/validator/v10"
)

// APIResponse is the envelope of every JSON answer.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// fieldMessages formats a failed validator tag; %[1]s is the field and
// %[2]s the tag parameter.
var fieldMessages = map[string]string{
	"required":  "Field %[1]s is required",
	"min":       "Field %[1]s must be at least %[2]s",
	"gte":       "Field %[1]s must be at least %[2]s",
	"max":       "Field %[1]s must be at most %[2]s",
	"gt":        "Field %[1]s must be greater than %[2]s",
	"email":     "Field %[1]s must be a valid email",
	"latitude":  "Field %[1]s must be a valid latitude",
	"longitude": "Field %[1]s must be a valid longitude",
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, APIResponse{Success: true, Data: data})
}

// Error writes err as an error envelope. Anything that is not an AppError is
// reported as an opaque internal error.
func Error(w http.ResponseWriter, err error) {

	appErr, ok := errors.IsAppError(err)
	if !ok {
		slog.Error("Unclassified error reached the response writer", slog.String("error", err.Error()))
		appErr = errors.InternalError("An unexpected error occurred")
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" {
		body.Details = []string{appErr.Detail}
	}

	write(w, appErr.StatusCode, APIResponse{Error: body})
}

// ValidationError sends one line per failed field.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, fieldMessage(fe))
	}

	write(w, http.StatusBadRequest, APIResponse{Error: &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: details,
	}})
}

func fieldMessage(fe validator.FieldError) string {
	if format, ok := fieldMessages[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Field %s is invalid: %s=%s", fe.Field(), fe.Tag(), fe.Param())
}

func write(w http.ResponseWriter, statusCode int, payload APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response",
			slog.Int("status", statusCode),
			slog.String("error", err.Error()),
		)
	}
}
