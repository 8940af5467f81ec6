// Package hub provides a typed client for the Pulp/Galaxy REST API that
// backs the console. It is the only place that knows URL shapes, pagination
// parameters and the asynchronous `{"task": <href>}` response convention.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an API client for the content hub.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a new hub client for the given base URL,
// e.g. "https://hub.example.com/api/galaxy".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a new client authenticating with the given token.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		token:      token,
	}
}

// CloseIdleConnections drops pooled keepalive connections to the hub.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// WithHTTPClient returns a new client using the given http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	return &Client{
		baseURL:    c.baseURL,
		httpClient: hc,
		token:      c.token,
	}
}

// TaskResponse is the body returned by mutating endpoints that run
// asynchronously on the hub.
type TaskResponse struct {
	Task string `json:"task"`
}

// get performs a GET request and unmarshals the response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, result)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, body, result)
}

// patch performs a PATCH request with a JSON body.
func (c *Client) patch(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPatch, c.baseURL+path, body, result)
}

// delete performs a DELETE request. Most hub deletes answer with a task href.
func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+path, nil, result)
}

func (c *Client) do(ctx context.Context, method, u string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
