// Package api executes HTTP requests against the Cravings backend. It attaches
// the bearer token, paces outgoing calls, retries transient failures and maps
// HTTP errors onto package sentinels.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"cravings-client/internal/config"
	"cravings-client/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token for outgoing requests. On a 401 the
// client asks the source to refresh once and retries; if that fails too the
// source is invalidated (forced logout).
type TokenSource interface {
	AccessToken() string
	Refresh(ctx context.Context) error
	Invalidate()
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
	}
}

// Client is the authenticated HTTP client for the backend REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	tokens     TokenSource
	limiter    *rate.Limiter
	retry      RetryConfig
	mu         sync.RWMutex
}

// NewClient creates a client for the configured backend. tokens may be nil for
// unauthenticated use.
func NewClient(cfg *config.Config, tokens TokenSource) (*Client, error) {
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	requestRate := cfg.RequestRate
	if requestRate <= 0 {
		requestRate = 20
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.APIBaseURL,
		headers:    make(map[string]string),
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), int(math.Ceil(requestRate))),
		retry:      DefaultRetryConfig(),
	}

	c.headers["Content-Type"] = "application/json"
	c.headers["Accept"] = "application/json"

	return c, nil
}

// Request represents an HTTP request to be executed.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   interface{}
}

// Response represents an HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do executes one logical operation against the backend: paced, retried on
// transient failures, refreshed once on 401. Mutating requests carry one
// idempotency key for all attempts so a retried write is not applied twice.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	idempotencyKey := ""
	if mutating(req.Method) {
		idempotencyKey = uuid.NewString()
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", req.Method),
		zap.String("path", req.Path),
	)

	refreshed := false
	var lastErr error

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			log.Warn("retrying request", zap.Int("attempt", attempt), zap.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var bodyReader io.Reader
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
		if err != nil {
			return nil, fmt.Errorf("creating HTTP request: %w", err)
		}

		c.setHeaders(httpReq)
		if idempotencyKey != "" {
			httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)
		}
		if c.tokens != nil {
			if token := c.tokens.AccessToken(); token != "" {
				httpReq.Header.Set("Authorization", "Bearer "+token)
			}
		}

		httpResp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrNetwork, err)
			continue
		}

		respBody, err := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading response body: %v", ErrNetwork, err)
			continue
		}

		resp := &Response{
			StatusCode: httpResp.StatusCode,
			Header:     httpResp.Header,
			Body:       respBody,
		}

		if resp.StatusCode == http.StatusUnauthorized {
			if c.tokens == nil {
				return resp, mapStatus(resp.StatusCode, resp.Body)
			}
			if refreshed {
				log.Warn("still unauthorized after token refresh, forcing logout")
				c.tokens.Invalidate()
				return resp, ErrSessionExpired
			}
			if err := c.tokens.Refresh(ctx); err != nil {
				log.Warn("token refresh failed, forcing logout", zap.Error(err))
				c.tokens.Invalidate()
				return resp, ErrSessionExpired
			}
			refreshed = true
			attempt-- // the refreshed retry does not consume a transient-retry slot
			continue
		}

		if (resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests) && attempt < c.retry.MaxRetries {
			lastErr = mapStatus(resp.StatusCode, resp.Body)
			continue
		}

		if resp.StatusCode >= 400 {
			return resp, mapStatus(resp.StatusCode, resp.Body)
		}

		return resp, nil
	}

	log.Error("request failed after retries", zap.Error(lastErr))
	return nil, lastErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// DecodeJSON unmarshals a response body into v.
func DecodeJSON(resp *Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// SetHeader sets a default header for all requests.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

func (c *Client) buildURL(path string, query map[string]string) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	u, err := base.Parse(strings.TrimSuffix(base.Path, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u, nil
}

func (c *Client) setHeaders(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	delay := float64(c.retry.RetryDelay) * math.Pow(c.retry.Multiplier, float64(attempt-1))
	if delay > float64(c.retry.MaxDelay) {
		delay = float64(c.retry.MaxDelay)
	}
	// jitter +/-25%
	jitter := delay * 0.25
	delay = delay + (rand.Float64()*2-1)*jitter
	return time.Duration(delay)
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}
