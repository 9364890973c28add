package transport

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
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 4 << 20
)

// NetworkError reports a transport-level failure: connection refused, DNS
// resolution, timeout, or a broken response stream. It is distinct from any
// HTTP status outcome — a NetworkError means no usable response arrived.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap describes the unwrap operation and its observable behavior.
//
// Unwrap may return an error when input validation, dependency calls, or security checks fail.
// Unwrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Request defines a public type used by gateAuth APIs.
//
// Request instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Request struct {
	Method      string
	Path        string
	Body        any // marshaled as JSON when non-nil; ignored for GET
	BearerToken string
}

// Response defines a public type used by gateAuth APIs.
//
// Response instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess describes the issuccess operation and its observable behavior.
//
// IsSuccess may return an error when input validation, dependency calls, or security checks fail.
// IsSuccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON describes the decodejson operation and its observable behavior.
//
// DecodeJSON may return an error when input validation, dependency calls, or security checks fail.
// DecodeJSON does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Response) DecodeJSON(v any) error {
	if r == nil || len(r.Body) == 0 {
		return errors.New("transport: empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// ContentType returns the response Content-Type header without parameters.
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	ct := r.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// Doer is the interface the gateAuth core programs against. [*Client] is the
// production implementation; tests substitute scripted fakes.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Option defines a public type used by gateAuth APIs.
//
// Option instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Option func(*Client)

// WithTimeout sets the per-exchange timeout. Zero or negative values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every exchange.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client defines a public type used by gateAuth APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.New("transport: base url must be http or https")
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do describes the do operation and its observable behavior.
//
// Do may return an error when input validation, dependency calls, or security checks fail.
// Do does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.resolve(req.Path)

	var bodyReader io.Reader
	sendBody := req.Body != nil && !strings.EqualFold(req.Method, http.MethodGet)
	if sendBody {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if sendBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Op: req.Method, URL: target, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: req.Method, URL: target, Err: err}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
	}, nil
}

func (c *Client) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.base.JoinPath(path).String()
	}
	return c.base.ResolveReference(ref).String()
}
