package apifootball

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/matchcast/core/pkg/logger"
	"github.com/matchcast/core/pkg/models"
)

const (
	// maxRetries is the total number of attempts per date fetch
	maxRetries = 3
	// retryDelay is the initial backoff, doubled on every further attempt
	retryDelay = 2000 * time.Millisecond
)

// ServiceError is returned once all retry attempts for a request are
// exhausted. It carries the last underlying error.
type ServiceError struct {
	Endpoint string
	Attempts int
	LastErr  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("api-football %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.LastErr)
}

func (e *ServiceError) Unwrap() error {
	return e.LastErr
}

// APIError represents a non-2xx upstream response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Client provides access to the API-Football fixtures service
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger

	// sleep is the backoff wait, replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// Config holds configuration for the API-Football client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey:  apiKey,
		BaseURL: "https://v3.football.api-sports.io",
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new API-Football client
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig("")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "api-football",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		breaker: breaker,
		logger:  logger.New("apifootball-client"),
		sleep:   sleepContext,
	}
}

// fixturesResponse represents the standard API-Football response envelope
type fixturesResponse struct {
	Get        string                      `json:"get"`
	Parameters map[string]interface{}      `json:"parameters"`
	Errors     interface{}                 `json:"errors"`
	Results    int                         `json:"results"`
	Paging     models.FootballAPIPaging    `json:"paging"`
	Response   []models.FootballAPIFixture `json:"response"`
}

// hasErrors checks if the API response body reports errors
func (r *fixturesResponse) hasErrors() bool {
	switch errs := r.Errors.(type) {
	case []interface{}:
		return len(errs) > 0
	case map[string]interface{}:
		return len(errs) > 0
	case string:
		return errs != ""
	default:
		return false
	}
}

// errorMessages extracts error messages from the response body
func (r *fixturesResponse) errorMessages() []string {
	var messages []string
	switch errs := r.Errors.(type) {
	case []interface{}:
		for _, e := range errs {
			if s, ok := e.(string); ok {
				messages = append(messages, s)
			}
		}
	case map[string]interface{}:
		for key, value := range errs {
			if s, ok := value.(string); ok {
				messages = append(messages, fmt.Sprintf("%s: %s", key, s))
			}
		}
	case string:
		messages = append(messages, errs)
	}
	return messages
}

// FixturesByDate fetches all fixtures for the given calendar date
// (YYYY-MM-DD). Failed requests are retried up to maxRetries total attempts
// with exponential backoff; once attempts are exhausted the last error is
// wrapped in a *ServiceError.
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]models.FootballAPIFixture, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			delay := retryDelay << uint(attempt-2) // 2s, 4s, ...
			c.logger.Warn().
				Err(lastErr).
				Str("date", date).
				Int("attempt", attempt).
				Dur("backoff", delay).
				Msg("Retrying fixtures request")
			if err := c.sleep(ctx, delay); err != nil {
				return nil, &ServiceError{Endpoint: "/fixtures", Attempts: attempt - 1, LastErr: lastErr}
			}
		}

		fixtures, err := c.fetchFixtures(ctx, date)
		if err == nil {
			return fixtures, nil
		}
		lastErr = err

		// An open breaker means the upstream is already known to be down;
		// further attempts would not even reach the network.
		if errors.Is(err, gobreaker.ErrOpenState) {
			break
		}
	}

	return nil, &ServiceError{Endpoint: "/fixtures", Attempts: maxRetries, LastErr: lastErr}
}

// fetchFixtures performs a single request through the circuit breaker
func (c *Client) fetchFixtures(ctx context.Context, date string) ([]models.FootballAPIFixture, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, date)
	})
	if err != nil {
		return nil, err
	}

	resp := result.(*fixturesResponse)
	if resp.hasErrors() {
		// Payload-level errors are logged, not fatal: the result list is
		// still usable.
		c.logger.Warn().
			Str("date", date).
			Str("api_errors", strings.Join(resp.errorMessages(), "; ")).
			Msg("API-Football reported errors in response body")
	}

	return resp.Response, nil
}

func (c *Client) doRequest(ctx context.Context, date string) (*fixturesResponse, error) {
	u, err := url.Parse(c.baseURL + "/fixtures")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	query := u.Query()
	query.Set("date", date)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "v3.football.api-sports.io")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.LogAPICall(http.MethodGet, u.String(), 0, time.Since(start), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.LogAPICall(http.MethodGet, u.String(), resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API returned status %d", resp.StatusCode),
		}
	}

	var apiResponse fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResponse, nil
}

// IsAvailable checks if the API key is configured
func (c *Client) IsAvailable() bool {
	return c.apiKey != ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
