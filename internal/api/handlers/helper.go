package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
)

const (
	maxUploadSize = 16 << 20
	maxFileSize   = 5 << 20
)

type messageResponse struct {
	Message string `json:"message"`
}

func pathID(r *http.Request, name string) (int64, error) {

	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError(fmt.Sprintf("Invalid %s", name))
	}

	return id, nil
}

// queryInt reads a positive integer query parameter, falling back to def
// when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {

	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, appErrors.BadRequestError(fmt.Sprintf("Query parameter '%s' must be a positive integer", name))
	}

	return value, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {

	value, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, appErrors.BadRequestError(fmt.Sprintf("Query parameter '%s' must be a number", name))
	}

	return value, nil
}

// formFile reads an uploaded file. A missing field yields empty content.
func formFile(r *http.Request, field string) ([]byte, string, error) {

	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", appErrors.BadRequestError(fmt.Sprintf("Could not read file '%s'", field)).WithError(err)
	}
	defer file.Close()

	if header.Size > maxFileSize {
		return nil, "", appErrors.BadRequestError(fmt.Sprintf("File '%s' is larger than %d MB", field, maxFileSize>>20))
	}

	content, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, "", appErrors.BadRequestError(fmt.Sprintf("Could not read file '%s'", field)).WithError(err)
	}
	if len(content) > maxFileSize {
		return nil, "", appErrors.BadRequestError(fmt.Sprintf("File '%s' is larger than %d MB", field, maxFileSize>>20))
	}

	return content, header.Filename, nil
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return appErrors.BadRequestError("Expected a multipart form").WithError(err)
	}

	return nil
}
