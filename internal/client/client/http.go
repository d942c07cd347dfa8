package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// HTTPClient talks to the REST user records API.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient builds a client for baseURL. A positive timeout bounds every
// request; zero leaves only the caller's context in charge.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &HTTPClient{baseURL: u, timeout: timeout}
	c.http = &http.Client{Transport: &tokenTransport{base: http.DefaultTransport, token: c.token}}
	return c, nil
}

// tokenTransport adds the bearer token to every outgoing request.
type tokenTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := t.token()
	if tok == "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	return t.base.RoundTrip(r)
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetToken replaces the bearer token. An empty token sends anonymous requests.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/ping", nil, http.StatusOK, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Login exchanges credentials for a token and remembers it for later calls.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", req, http.StatusOK, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users", nil, http.StatusOK, &raw); err != nil {
		return nil, err
	}
	return models.ParseUsers(raw)
}

func (c *HTTPClient) CreateUser(ctx context.Context, u models.NewUser) (models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/users", u, http.StatusCreated, &raw); err != nil {
		return models.User{}, err
	}
	return models.ParseUser(raw)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// do sends one request and decodes a JSON response into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, in any, want int, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return mapStatus(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func mapStatus(resp *http.Response) error {
	msg := errorMessage(resp)
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, msg)
	}
}

// errorMessage extracts {"error": "..."} or falls back to the status text.
func errorMessage(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return http.StatusText(resp.StatusCode)
}
