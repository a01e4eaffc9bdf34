package painelsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SessionCookie is the non-HttpOnly marker cookie the service sets
// alongside the token cookies. Its presence means a session may exist and
// is worth probing on startup; its absence means skip the network
// entirely.
const SessionCookie = "painel_session"

// Client talks to the painel service. Authentication state lives in the
// cookie jar, mirroring how a browser would hold the HttpOnly token
// cookies.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnUnauthenticated, when set, runs after any request (other than the
	// auth endpoints themselves) comes back 401. The session store uses it
	// to force the state machine to unauthenticated.
	OnUnauthenticated func()
}

// NewClient creates a service client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// HasSessionMarker reports whether the marker cookie is present in the
// jar. A fresh client (no prior login) returns false, which lets callers
// skip the startup auth probe entirely.
func (c *Client) HasSessionMarker() bool {
	if c.HTTPClient.Jar == nil {
		return false
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return false
	}
	for _, cookie := range c.HTTPClient.Jar.Cookies(u) {
		if cookie.Name == SessionCookie {
			return true
		}
	}
	return false
}

// doJSON performs a JSON request. A non-2xx response becomes an
// *APIError. When fireHook is true a 401 additionally triggers
// OnUnauthenticated.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, fireHook bool) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := parseErrorResponse(resp, respBody); err != nil {
		if fireHook && resp.StatusCode == http.StatusUnauthorized && c.OnUnauthenticated != nil {
			c.OnUnauthenticated()
		}
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
