// Package client provides the typed HTTP client for the Klair AI backend.
//
// Each method performs exactly one request/response round trip. The client
// holds no state between calls, applies no retries or caching, and lets
// every transport or server failure propagate to the caller. Retry and
// timeout policy belong to the caller and the injected HTTP client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is the API client facade. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	logger     *zap.Logger
}

// Config holds client configuration.
type Config struct {
	BaseURL string

	// HTTPClient overrides the default transport. Timeout and cancellation
	// policy live here, not in the facade.
	HTTPClient *http.Client

	// Timeout applies to the default transport only. Zero means no timeout;
	// chat calls can run well past any reasonable fixed limit.
	Timeout time.Duration

	// AuthToken, if set, is sent as a bearer token on every request.
	AuthToken string

	// Logger receives per-request debug entries. Nil disables logging.
	Logger *zap.Logger
}

// New creates a new client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		authToken:  cfg.AuthToken,
		logger:     logger,
	}
}

// SetAuthToken replaces the bearer token used for subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// APIError is returned for any non-2xx response. It carries the original
// status code and raw body; the client never classifies failures further.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if msg == "" {
		return fmt.Sprintf("%s %s: server returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: server returned %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// AsAPIError checks if an error is an APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// do performs one round trip: method + path + optional query and JSON body,
// decoding a 2xx JSON response into out when out is non-nil. A non-2xx
// status yields an *APIError with the response body attached.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*raw = data
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// doRaw performs one round trip and returns the response body untouched.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, query, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// idPath interpolates an identifier into a path. Identifiers are integers
// assigned by the backend, but the segment is escaped anyway.
func idPath(prefix string, id int, suffix string) string {
	return prefix + url.PathEscape(strconv.Itoa(id)) + suffix
}
