// Package chatapi is the HTTP client for the remote wellness chat endpoint.
//
// The contract is a single request/response exchange:
//
//	POST /api/chat  {"message": "..."}
//	200             {"data": {"summary": "...", "mood": "...", "energy_score": 7, ...}}
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tessro/wellness/internal/version"
)

// ChatPath is the path of the chat endpoint relative to the base URL.
const ChatPath = "/api/chat"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Request is the body sent to the chat endpoint.
type Request struct {
	Message string `json:"message"`
}

// response is the envelope returned by the chat endpoint. A failing backend
// may answer 200 with an "error" member instead of "data".
type response struct {
	Data  *Stats          `json:"data"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Client talks to the chat endpoint.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each Chat call. Zero means no timeout. The http.Client
// given to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the endpoint rooted at baseURL
// (e.g. "http://127.0.0.1:8000"). No timeout is applied unless WithTimeout is given.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.baseURL + ChatPath
}

// Chat posts message to the endpoint and returns the decoded stats.
// Any failure is returned as a *DeliveryError matching ErrDelivery.
func (c *Client) Chat(ctx context.Context, message string) (*Stats, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(Request{Message: message})
	if err != nil {
		return nil, &DeliveryError{Op: "request", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &DeliveryError{Op: "request", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &DeliveryError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &DeliveryError{Op: "request", StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DeliveryError{
			Op:         "status",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", snippet(respBody)),
		}
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &DeliveryError{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}
	if len(result.Error) > 0 && string(result.Error) != "null" {
		return nil, &DeliveryError{
			Op:         "payload",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server error: %s", snippet(result.Error)),
		}
	}
	if result.Data == nil {
		return nil, &DeliveryError{Op: "payload", StatusCode: resp.StatusCode, Err: errors.New("missing data")}
	}
	if !hasSummary(respBody) {
		return nil, &DeliveryError{Op: "payload", StatusCode: resp.StatusCode, Err: errors.New("missing summary")}
	}
	return result.Data, nil
}

// hasSummary reports whether the data object carries a summary member.
// An empty or null summary still counts as a reply.
func hasSummary(body []byte) bool {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false
	}
	_, ok := envelope.Data[fieldSummary]
	return ok
}

// snippet trims a body for inclusion in an error message.
func snippet(b []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(b))
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
