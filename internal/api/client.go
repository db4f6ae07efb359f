// Package api is the single HTTP gateway to the remote AutoQ service. It
// attaches the session's bearer token to every request, funnels error
// bodies into one displayable message, and intercepts 401 responses to
// clear the session before the caller sees the failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rushikeshburle/autoq/internal/session"
)

// apiPrefix is the fixed path prefix of every versioned route.
const apiPrefix = "/api/v1"

// Config holds gateway settings.
type Config struct {
	// BaseURL is the service origin, e.g. "http://localhost:8000".
	BaseURL string
	// HTTPClient dispatches requests. No timeout is set by default; a
	// failed or hung call is the user's signal to retry.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config for the given origin.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// Client dispatches requests against the remote service. Methods are thin
// wrappers: build path and body, send, decode. No retries, no caching, no
// deduplication.
type Client struct {
	config  Config
	session *session.Store

	// onUnauthorized runs after a 401 has cleared the session. The error
	// is still returned to the caller, so the original call site handles
	// the failure a second time; that redundancy is kept on purpose.
	onUnauthorized func()
}

// New creates a gateway bound to the given session store.
func New(config Config, sess *session.Store) *Client {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Client{config: config, session: sess}
}

// OnUnauthorized registers the hook fired after a 401 forced a logout.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) url(path string) string {
	return c.config.BaseURL + apiPrefix + path
}

// newRequest builds a request and reads the current token from the session
// store at dispatch time. Requests without a token go out unauthenticated;
// the server decides whether that is permitted.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send dispatches the request and returns the raw response body after the
// status check. All error handling for every resource method funnels
// through here.
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			if err := c.session.Logout(); err != nil {
				slog.Error("failed to clear session after 401", "error", err)
			}
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: normalizeDetail(body)}
	}
	return body, nil
}

// doJSON sends a request and decodes the JSON response into out (skipped
// when out is nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	raw, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func encodeBody(in any) (io.Reader, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(raw), nil
}

func decodeJSON(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// query appends non-empty parameters to a path.
func query(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
