// Package apiclient is the typed gateway to the bakery REST API. It builds
// request URLs, attaches the visitor's bearer token and normalizes failures
// into *Error values.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bakery-storefront/internal/core/logger"

	"go.uber.org/zap"
)

// UnauthorizedHook runs when an authenticated call is rejected with 401.
type UnauthorizedHook func(ctx context.Context)

// Request describes one backend call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Client performs backend calls.
type Client struct {
	baseURL        string
	http           *http.Client
	onUnauthorized []UnauthorizedHook
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// OnUnauthorized registers a hook run on every 401 of a call that carried a token.
// Hooks must be registered before the client is shared.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.onUnauthorized = append(c.onUnauthorized, hook)
}

// Do executes req and decodes a successful JSON response into out (when non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	token, hasToken := TokenFrom(ctx)
	if hasToken {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newHTTPError(resp.StatusCode, readDetail(resp.Body))

		logger.Named("apiclient").Warn("Backend call failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)

		if resp.StatusCode == http.StatusUnauthorized && hasToken {
			for _, hook := range c.onUnauthorized {
				hook(ctx)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// readDetail pulls a "message" or "error" field out of an error body.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return strings.TrimSpace(string(raw))
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
