package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// CreateTestRequestWithContext builds a request as it looks after the
// logging middleware and the session guard have run.
func CreateTestRequestWithContext(method, target string, body io.Reader, user *models.User, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, user)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)

	return req.WithContext(ctx)
}

// MultipartBody encodes fields and files as multipart/form-data and returns
// the body with its content type.
func MultipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// DecodeResponse unmarshals the envelope and, when data is non-nil, its
// payload.
func DecodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, data any) *response.APIResponse {
	t.Helper()

	var raw struct {
		response.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))

	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}

	return &raw.APIResponse
}
