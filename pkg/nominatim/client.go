package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

var ErrNotFound = errors.New("nominatim: no result")

// Place is a geocoding result with coordinates already parsed.
type Place struct {
	DisplayName string
	Lat         float64
	Lon         float64
}

// defines the geocoding operations the storefront needs.
type Client interface {
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
	Search(ctx context.Context, query string) (*Place, error)
	Ping(ctx context.Context) error
}

type nominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Nominatim's usage policy requires an identifying User-Agent.
func NewClient(baseURL, userAgent string, timeout time.Duration) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &nominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// lat/lon arrive as strings.
type place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Error       string `json:"error,omitempty"`
}

func (p place) parse() (*Place, error) {
	if p.Error != "" || p.DisplayName == "" {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid latitude %q: %w", p.Lat, err)
	}

	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: invalid longitude %q: %w", p.Lon, err)
	}

	return &Place{DisplayName: p.DisplayName, Lat: lat, Lon: lon}, nil
}

func (c *nominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	query := url.Values{
		"format":         {"json"},
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"addressdetails": {"1"},
	}

	var result place
	if err := c.get(ctx, "/reverse", query, &result); err != nil {
		return nil, err
	}

	return result.parse()
}

// Search returns the best match only.
func (c *nominatimClient) Search(ctx context.Context, q string) (*Place, error) {
	query := url.Values{
		"format": {"json"},
		"q":      {q},
		"limit":  {"1"},
	}

	var results []place
	if err := c.get(ctx, "/search", query, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return results[0].parse()
}

// Ping asks the /status endpoint whether the service and its database are up.
func (c *nominatimClient) Ping(ctx context.Context) error {
	var status struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}

	if err := c.get(ctx, "/status", url.Values{"format": {"json"}}, &status); err != nil {
		return err
	}

	if status.Status != 0 {
		return fmt.Errorf("nominatim unavailable: %s", status.Message)
	}

	return nil
}

func (c *nominatimClient) get(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("nominatim returned status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	return nil
}
