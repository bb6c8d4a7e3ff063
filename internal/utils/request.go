package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body cannot be empty")

// ParseAndValidate decodes the JSON body into dest and validates it, writing
// the error response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := decodeBody(r, dest); err != nil {
		slog.Warn("Rejected request body",
			slog.String("endpoint", r.URL.Path),
			slog.String("error", err.Error()),
		)
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	return Validate(w, dest, validate)
}

// Validate runs the struct validator over dest and writes the validation
// response when it fails.
func Validate(w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	err := validate.Struct(dest)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		slog.Debug("Input failed validation", slog.String("error", fieldErrs.Error()))
		response.ValidationError(w, fieldErrs)
		return false
	}

	// InvalidValidationError: dest was not a struct pointer.
	slog.Error("Validator misuse", slog.String("error", err.Error()))
	response.Error(w, appErrors.InternalError("Could not validate the request"))
	return false
}

func decodeBody(r *http.Request, dest any) error {

	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	switch {
	case len(bytes.TrimSpace(body)) == 0:
		return errEmptyBody
	case len(body) > maxBodyBytes:
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}
