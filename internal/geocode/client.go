// Package geocode talks to the reverse-geocoding service that turns
// coordinates into a location description.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sethvargo/go-retry"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks attendance-be/internal/geocode Client

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Client resolves coordinates to the provider's raw JSON description.
type Client interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]byte, error)
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geocode provider returned status %d", e.StatusCode)
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
	backoff    func() retry.Backoff
}

// NewHTTPClient creates a Client for a BigDataCloud-compatible
// reverse-geocode-client endpoint.
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
		},
	}
}

// ReverseGeocode fetches the description, retrying network errors and 5xx answers.
func (c *httpClient) ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid geocode base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("localityLanguage", "en")
	endpoint.RawQuery = q.Encode()

	var body []byte
	err = retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		body, err = c.fetch(ctx, endpoint.String())
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return err
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *httpClient) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocode provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read geocode response: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("geocode provider returned invalid JSON")
	}

	return body, nil
}
