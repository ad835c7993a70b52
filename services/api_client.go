package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// APIClient talks to the hotel backend. Default headers are applied to every
// request; SetAuthToken is the only way to change the Authorization header.
type APIClient struct {
	rc *resty.Client

	mu     sync.RWMutex
	header http.Header
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	rc := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	return &APIClient{rc: rc, header: header}
}

// Clone returns a client that shares the transport but has its own default headers.
func (c *APIClient) Clone() *APIClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &APIClient{rc: c.rc, header: c.header.Clone()}
}

// SetAuthToken attaches a bearer token to every later request. An empty
// token removes the Authorization header altogether.
func (c *APIClient) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != "" {
		c.header.Set("Authorization", "Bearer "+token)
	} else {
		c.header.Del("Authorization")
	}
}

// DefaultHeader returns a copy of the headers sent with every request.
func (c *APIClient) DefaultHeader() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Clone()
}

func (c *APIClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *APIClient) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	req := c.rc.R().SetContext(ctx)
	for key, values := range c.DefaultHeader() {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	raw := resp.Body()
	if !resp.IsSuccess() {
		return nil, &APIError{Status: resp.StatusCode(), Message: errorMessage(raw), Body: raw}
	}
	return json.RawMessage(raw), nil
}

// errorMessage pulls "message" or "error" out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if body.Message != "" {
		return body.Message
	}
	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return s
	}
	return ""
}
