package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	breakerName     = "storefront"
	maxResponseSize = 4 << 20
)

var errUpstreamStatus = errors.New("storefront returned a server error")

type rawResponse struct {
	status int
	body   []byte
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// Client talks to the storefront REST backend. Authentication is the
// backend's session cookie, kept in the client's cookie jar.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*rawResponse]
}

func NewClient(upstream config.Upstream, breakerCfg config.Breaker) (*Client, error) {

	baseURL, err := url.Parse(upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storefront base url %q: %w", upstream.BaseURL, err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("storefront base url %q must be absolute", upstream.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Timeout:   upstream.Timeout,
		Jar:       jar,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	threshold := breakerCfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Business rejections and 4xx are answers, not outages.
		IsSuccessful: func(err error) bool {
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Storefront circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.SetBreakerState(name, float64(to))
		},
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker:    gobreaker.NewCircuitBreaker[*rawResponse](settings),
	}, nil
}

// Cookie returns the value of a cookie the backend set on the client.
func (c *Client) Cookie(name string) string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// Ping checks the backend answers HTTP at all. It bypasses the breaker so
// health probes neither trip nor mask it.
func (c *Client) Ping(ctx context.Context) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("storefront answered %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest any) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query}, dest)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, payload, dest any) error {

	var body []byte

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return appErrors.InternalError("Failed to encode request").WithError(err)
		}
		body = encoded
	}

	return c.do(ctx, request{op: op, method: method, path: path, body: body, contentType: "application/json"}, dest)
}

type filePart struct {
	field    string
	filename string
	content  []byte
}

func (c *Client) sendMultipart(ctx context.Context, op, method, path string, fields map[string]string, files []filePart, dest any) error {

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return appErrors.InternalError("Failed to encode form").WithError(err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return appErrors.InternalError("Failed to encode form").WithError(err)
		}
		if _, err := part.Write(file.content); err != nil {
			return appErrors.InternalError("Failed to encode form").WithError(err)
		}
	}

	if err := writer.Close(); err != nil {
		return appErrors.InternalError("Failed to encode form").WithError(err)
	}

	return c.do(ctx, request{op: op, method: method, path: path, body: buf.Bytes(), contentType: writer.FormDataContentType()}, dest)
}

func (c *Client) do(ctx context.Context, req request, dest any) error {

	start := time.Now()

	raw, err := c.breaker.Execute(func() (*rawResponse, error) {
		return c.roundTrip(ctx, req)
	})

	if err != nil && !errors.Is(err, errUpstreamStatus) {
		metrics.ObserveUpstream(req.op, metrics.OutcomeTransport, time.Since(start))

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return appErrors.TransportError("Storefront is temporarily unavailable").WithError(err)
		}

		return appErrors.TransportError("Could not reach the storefront").WithError(err)
	}

	mapped := mapStatus(raw)

	outcome := metrics.OutcomeSuccess
	if mapped != nil {
		outcome = metrics.OutcomeRejected
		if appErrors.HasCode(mapped, appErrors.ErrCodeTransport) {
			outcome = metrics.OutcomeTransport
		}
	}
	metrics.ObserveUpstream(req.op, outcome, time.Since(start))

	if mapped != nil {
		return mapped
	}

	if dest == nil || len(bytes.TrimSpace(raw.body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw.body, dest); err != nil {
		return appErrors.TransportError("Unexpected response from the storefront").WithError(err)
	}

	return nil
}

func (c *Client) roundTrip(ctx context.Context, req request) (*rawResponse, error) {

	target := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", req.op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", req.op, err)
	}

	raw := &rawResponse{status: resp.StatusCode, body: payload}

	if resp.StatusCode >= http.StatusInternalServerError {
		return raw, fmt.Errorf("%s: %w (status %d)", req.op, errUpstreamStatus, resp.StatusCode)
	}

	return raw, nil
}

// mapStatus turns a non-2xx answer into the AppError consumers see. A body
// `{error: true, message}` with 2xx is left to the caller.
func mapStatus(raw *rawResponse) error {

	if raw.status >= 200 && raw.status < 300 {
		return nil
	}

	return appErrors.FromUpstreamStatus(raw.status, messageFrom(raw.body))
}

func messageFrom(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// rejection converts a 2xx `{error: true}` envelope into a ValidationError.
func rejection(errorFlag bool, message string) error {
	if !errorFlag {
		return nil
	}
	return appErrors.ValidationError(orDefault(message, "Request rejected by the storefront"))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// decodeList reads a list that the backend returns either wrapped under key
// (optionally with a pagination block) or as a bare JSON array.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, *models.Pagination, error) {

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, appErrors.TransportError("Unexpected response from the storefront").WithError(err)
		}
		return items, nil, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, nil, appErrors.TransportError("Unexpected response from the storefront").WithError(err)
	}

	var pagination *models.Pagination
	if rawPagination, ok := wrapped["pagination"]; ok && !bytes.Equal(bytes.TrimSpace(rawPagination), []byte("null")) {
		pagination = &models.Pagination{}
		if err := json.Unmarshal(rawPagination, pagination); err != nil {
			return nil, nil, appErrors.TransportError("Unexpected response from the storefront").WithError(err)
		}
	}

	for _, key := range keys {
		rawItems, ok := wrapped[key]
		if !ok {
			continue
		}

		var items []T
		if err := json.Unmarshal(rawItems, &items); err != nil {
			continue
		}
		return items, pagination, nil
	}

	return nil, pagination, nil
}
