package swiftype

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// request describes one HTTP exchange.
type request struct {
	method string
	path   string
	params Params

	// platform requests authenticate with the platform client id/secret
	// carried in params, so a missing key or token is not fatal.
	platform bool
}

func (c *Client) get(ctx context.Context, path string, params Params, out any, opts []CallOption) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, params: params}, out, opts)
}

func (c *Client) post(ctx context.Context, path string, params Params, out any, opts []CallOption) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, params: params}, out, opts)
}

func (c *Client) put(ctx context.Context, path string, params Params, out any, opts []CallOption) error {
	return c.do(ctx, request{method: http.MethodPut, path: path, params: params}, out, opts)
}

func (c *Client) delete(ctx context.Context, path string, params Params, out any, opts []CallOption) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path, params: params}, out, opts)
}

// do performs an HTTP request with authentication and decodes the JSON
// response into out. A nil out discards the body after checking it is JSON.
func (c *Client) do(ctx context.Context, r request, out any, opts []CallOption) error {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	creds, err := resolveCredentials(co.creds, c.creds, credentials{apiKey: c.cfg.APIKey})
	if err != nil && !r.platform {
		return err
	}

	req, err := c.newRequest(ctx, r, creds)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(r.method, "error", time.Since(start))
		return &TransportError{Method: r.method, URL: redact(req.URL), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(r.method, "error", time.Since(start))
		return &TransportError{Method: r.method, URL: redact(req.URL), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	elapsed := time.Since(start)
	c.metrics.observe(r.method, strconv.Itoa(resp.StatusCode), elapsed)
	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("Swiftype API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(r.method, r.path, resp.StatusCode, body)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if out == nil {
		if !json.Valid(body) {
			return &DecodeError{StatusCode: resp.StatusCode, Body: body, Err: fmt.Errorf("body is not valid JSON")}
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &DecodeError{StatusCode: resp.StatusCode, Body: body, Err: err}
	}
	return nil
}

// newRequest addresses r against the base URL, serializes its params and
// attaches the resolved credentials.
func (c *Client) newRequest(ctx context.Context, r request, creds credentials) (*http.Request, error) {
	u, err := c.baseURL.Parse(r.path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", r.path, err)
	}

	var (
		query string
		body  io.Reader
	)
	switch r.method {
	case http.MethodGet, http.MethodDelete:
		query = encodeQuery(r.params)
	default:
		params := r.params
		if params == nil {
			params = Params{}
		}
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	if creds.apiKey != "" && !creds.bearer() {
		auth := "auth_token=" + url.QueryEscape(creds.apiKey)
		if query == "" {
			query = auth
		} else {
			query += "&" + auth
		}
	}
	u.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds.bearer() {
		req.Header.Set("Authorization", "Bearer "+creds.accessToken)
	}

	return req, nil
}

// redact strips the query string, which may carry auth_token.
func redact(u *url.URL) string {
	cp := *u
	cp.RawQuery = ""
	return cp.String()
}

// segment escapes a caller-supplied identifier for use as one path segment.
func segment(id string) string {
	return url.PathEscape(id)
}
