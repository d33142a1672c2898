package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is a thin JSON client bound to one base URL.
type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
}

// NewClient parses baseURL and returns a Client. A malformed URL is a
// configuration error and fails fast.
func NewClient(name, baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Name: name, BaseURL: u, HTTP: httpClient}
}

// Do sends a request to path (appended to the base path) and returns the raw
// response.
func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader, headers http.Header) (*http.Response, error) {
	u := *c.BaseURL
	u.Path = strings.TrimRight(c.BaseURL.Path, "/") + path
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HTTP.Do(req)
}

// DoJSON sends in (if non-nil) as a JSON body and decodes a 2xx response into
// out. Non-2xx responses come back as *StatusError.
func (c *Client) DoJSON(ctx context.Context, method, path, rawQuery string, in, out any, headers http.Header) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", c.Name, err)
		}
		body = bytes.NewReader(buf)
	}

	resp, err := c.Do(ctx, method, path, rawQuery, body, headers)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", c.Name, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", c.Name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(c.Name, resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", c.Name, err)
	}
	return nil
}

// StatusError is a non-2xx answer from a backend.
type StatusError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Service, e.StatusCode)
}

// newStatusError pulls the backend's "message" field out of the body when
// there is one.
func newStatusError(service string, status int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &StatusError{Service: service, StatusCode: status, Message: payload.Message}
}
