package busapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/nycbus/busboard/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the backend listens during local development
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 10 * time.Second

	// DefaultCacheDuration is how long list and chart responses are cached
	DefaultCacheDuration = 30 * time.Second
)

// Client talks to the bus delay statistics API.
type Client struct {
	// BaseURL is the backend base URL (e.g. "http://127.0.0.1:8000")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay time.Duration

	// CacheDuration is how long cached GET responses stay valid (0 = no cache)
	CacheDuration time.Duration

	// cache holds raw decoded responses keyed by endpoint path
	cacheMutex sync.RWMutex
	cache      map[string]cacheEntry
}

type cacheEntry struct {
	value interface{}
	at    time.Time
}

// NewClient creates a client for the given base URL. An empty baseURL falls
// back to the local development default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:       baseURL,
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		CacheDuration: DefaultCacheDuration,
		cache:         make(map[string]cacheEntry),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// InvalidateCache drops every cached response, forcing fresh fetches.
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// GetChartData fetches the average scheduled delay per route.
func (c *Client) GetChartData(ctx context.Context) (*ChartData, error) {
	var out ChartData
	if err := c.getCached(ctx, "/api/bus-data", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFilterOptions fetches the unique route names.
func (c *Client) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	var out FilterOptions
	if err := c.getCached(ctx, "/api/filter-options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStopNames fetches the unique stop names.
func (c *Client) GetStopNames(ctx context.Context) (*StopNames, error) {
	var out StopNames
	if err := c.getCached(ctx, "/api/stop-names", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindArrival fetches the average delay for a route at an hour of day.
// Returns ErrTypeNotFound when the backend has no matching records.
func (c *Client) FindArrival(ctx context.Context, route string, hour int) (*ArrivalData, error) {
	if err := ValidateRoute(route); err != nil {
		return nil, err
	}
	if err := ValidateHour(hour); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("route", route)
	query.Set("hour", strconv.Itoa(hour))

	var out ArrivalData
	if err := c.getWithRetry(ctx, "/api/find-arrival", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStopSchedule fetches the next scheduled bus per route for a stop at an
// exact time of day.
func (c *Client) GetStopSchedule(ctx context.Context, stopName string, hour, minute int) (*StopSchedule, error) {
	if err := ValidateStopName(stopName); err != nil {
		return nil, err
	}
	if err := ValidateHour(hour); err != nil {
		return nil, err
	}
	if err := ValidateMinute(minute); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("stop_name", stopName)
	query.Set("hour", strconv.Itoa(hour))
	query.Set("minute", strconv.Itoa(minute))

	var out StopSchedule
	if err := c.getWithRetry(ctx, "/api/stop-schedule", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PredictDelay fetches the modeled delay for an exact time of day. The time
// must be a zero-padded HH:MM:SS string.
func (c *Client) PredictDelay(ctx context.Context, timeStr string) (*DelayPrediction, error) {
	if err := ValidateTimeOfDay(timeStr); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("time_str", timeStr)

	var out DelayPrediction
	if err := c.getWithRetry(ctx, "/api/predict-delay", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getCached serves list/chart endpoints through the response cache. Queries
// with parameters are never cached; they go straight to getWithRetry.
func (c *Client) getCached(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.CacheDuration > 0 {
		c.cacheMutex.RLock()
		entry, ok := c.cache[path]
		c.cacheMutex.RUnlock()
		if ok && time.Since(entry.at) < c.CacheDuration {
			if raw, ok := entry.value.(json.RawMessage); ok {
				if err := json.Unmarshal(raw, out); err == nil {
					return nil
				}
			}
		}
	}

	var raw json.RawMessage
	if err := c.getWithRetry(ctx, path, query, &raw); err != nil {
		return err
	}

	if c.CacheDuration > 0 {
		c.cacheMutex.Lock()
		c.cache[path] = cacheEntry{value: raw, at: time.Now()}
		c.cacheMutex.Unlock()
	}

	return json.Unmarshal(raw, out)
}

// getWithRetry performs a GET with exponential backoff on retryable errors.
func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values, out interface{}) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(currentDelay):
			case <-ctx.Done():
				return classifyTransportError(path, ctx.Err())
			}

			currentDelay *= 2
			if currentDelay > c.MaxRetryDelay {
				currentDelay = c.MaxRetryDelay
			}
		}

		err := c.getAttempt(ctx, path, query, out, attempt+1)
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// getAttempt performs a single GET request and decodes the JSON body.
func (c *Client) getAttempt(ctx context.Context, path string, query url.Values, out interface{}, attempt int) error {
	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &APIError{Type: ErrTypeNetwork, Message: "failed to create request", Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	logging.LogAPIRequest(http.MethodGet, reqURL, attempt)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyTransportError(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogAPIResponse(reqURL, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return newHTTPError(path, resp.StatusCode, errorDetail(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newParseError(path, err)
	}

	return nil
}

// errorDetail extracts the backend's {"detail": ...} message from an error
// body, falling back to the raw text.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}

// Ping performs a health check against the API root.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return &APIError{Type: ErrTypeNetwork, Message: "failed to create ping request", Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyTransportError("/", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return newHTTPError("/", resp.StatusCode, "")
	}

	logging.Debug("backend reachable", zap.String("base_url", c.BaseURL))
	return nil
}
