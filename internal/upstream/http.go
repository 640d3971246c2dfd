package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds individual HTTP calls when no timeout is configured.
const defaultTimeout = 10 * time.Second

// maxErrorBodySize limits how much of an error response body is read
// for inclusion in error messages.
const maxErrorBodySize = 4096

// HTTPClient talks to a light controller over its JSON HTTP API.
//
// Endpoints:
//
//	GET {base}/lights             — full device list
//	PUT {base}/lights/{id}/state  — apply a state change
//
// A single immediate retry is performed on transient network errors;
// anything beyond that is the caller's concern.
//
// Thread Safety: safe for concurrent use.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	// URL is the base URL of the controller API.
	URL string

	// Token is the bearer token; empty disables the Authorization header.
	Token string

	// Timeout bounds each request. Zero selects the default.
	Timeout time.Duration
}

// NewHTTPClient creates a controller client for the given endpoint.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAll returns every light the controller reports.
func (c *HTTPClient) FetchAll(ctx context.Context) ([]Device, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/lights", nil)
	if err != nil {
		return nil, err
	}

	var devices []Device
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, fmt.Errorf("%w: decoding device list: %w", ErrRequestFailed, err)
	}
	return devices, nil
}

// WriteState applies a rendered state change to one light.
func (c *HTTPClient) WriteState(ctx context.Context, id string, req WriteRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: encoding write request: %w", ErrRequestFailed, err)
	}

	url := fmt.Sprintf("%s/lights/%s/state", c.baseURL, id)
	_, err = c.do(ctx, http.MethodPut, url, payload)
	return err
}

// do executes one request with a single retry on transient network errors.
func (c *HTTPClient) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	body, err := c.doOnce(ctx, method, url, payload)
	if err != nil && isTransient(err) && ctx.Err() == nil {
		body, err = c.doOnce(ctx, method, url, payload)
	}
	return body, err
}

func (c *HTTPClient) doOnce(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusInternalServerError {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}
	return body, nil
}

// isTransient reports whether an error is worth one immediate retry.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
