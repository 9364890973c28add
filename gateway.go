package gateAuth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatentry/gateAuth/transport"
)

// GatewayHooks are the narrow callbacks the Gateway uses to reach back into
// the session lifecycle. They are injected at construction — never through
// ambient registration — so the wiring is visible at the call site that
// builds the core.
type GatewayHooks struct {
	// AccessToken returns the current access token, or "" when none is
	// stored. Used for default token injection.
	AccessToken func() string

	// RefreshAccessToken performs (or joins) the single-flight refresh and
	// returns the fresh access token. An empty token with a nil error means
	// the session could not be refreshed.
	RefreshAccessToken func(ctx context.Context) (string, error)

	// SessionDied reports that a call ended in a genuine auth rejection.
	// Invoked at most once per failed call; the receiver dedupes concurrent
	// notifications.
	SessionDied func()

	// ServerDown and ServerUp report outage transitions. ServerDown must
	// never trigger logout on the receiving side.
	ServerDown func()
	ServerUp   func()
}

// GatewayOption defines a public type used by gateAuth APIs.
//
// GatewayOption instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GatewayOption func(*Gateway)

// WithBootstrapRoutes adds path prefixes treated as auth-bootstrap routes: a
// 401 there surfaces immediately, with no refresh attempt.
func WithBootstrapRoutes(routes ...string) GatewayOption {
	return func(g *Gateway) {
		g.bootstrapRoutes = append(g.bootstrapRoutes, routes...)
	}
}

// WithGatewayMetrics attaches the shared metrics table.
func WithGatewayMetrics(m *Metrics) GatewayOption {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// Gateway executes one logical authenticated HTTP call with at-most-one
// retry, single-flight refresh coordination (through the hooks), and
// unambiguous failure classification.
type Gateway struct {
	doer            transport.Doer
	hooks           GatewayHooks
	bootstrapRoutes []string
	metrics         *Metrics
}

// NewGateway describes the newgateway operation and its observable behavior.
//
// NewGateway may return an error when input validation, dependency calls, or security checks fail.
// NewGateway does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewGateway(doer transport.Doer, hooks GatewayHooks, opts ...GatewayOption) (*Gateway, error) {
	if doer == nil {
		return nil, errors.New("transport required")
	}

	g := &Gateway{
		doer:  doer,
		hooks: hooks,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

type sendSettings struct {
	bearer    string
	bearerSet bool
	noAuth    bool
}

// SendOption defines a public type used by gateAuth APIs.
//
// SendOption instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SendOption func(*sendSettings)

// WithBearer overrides the injected bearer token for one call. Used for the
// guest-token OTP routes and the refresh route itself.
func WithBearer(token string) SendOption {
	return func(s *sendSettings) {
		s.bearer = token
		s.bearerSet = true
	}
}

// WithoutAuth sends the call with no Authorization header.
func WithoutAuth() SendOption {
	return func(s *sendSettings) {
		s.noAuth = true
	}
}

// Send executes one logical call. It performs at most two underlying network
// exchanges: the original and, after a successful refresh, exactly one
// retry. A second 401 is surfaced as [ErrUnauthorized], never retried again.
func (g *Gateway) Send(ctx context.Context, method, path string, body any, opts ...SendOption) (*transport.Response, error) {
	var settings sendSettings
	for _, opt := range opts {
		opt(&settings)
	}

	token := ""
	switch {
	case settings.noAuth:
	case settings.bearerSet:
		token = settings.bearer
	case g.hooks.AccessToken != nil:
		token = g.hooks.AccessToken()
	}

	if g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricSendLatency, time.Since(start))
	}

	resp, err := g.exchange(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}

	switch g.classify(resp, path, false) {
	case outcomeOK:
		g.noteServerUp()
		return resp, nil
	case outcomeOutage:
		return nil, g.failOutage(resp.StatusCode)
	case outcomeUnauthorized:
		return nil, g.failUnauthorized()
	case outcomeBusinessError:
		g.noteServerUp()
		g.metrics.Inc(MetricGatewayRequestError)
		return nil, parseRequestError(resp)
	}

	// First 401 on a refreshable route: join the single-flight refresh and
	// retry once with the fresh token.
	fresh, err := g.refresh(ctx)
	if err != nil {
		if IsServerUnavailable(err) {
			g.metrics.Inc(MetricGatewayOutage)
			return nil, err
		}
		return nil, err
	}
	if fresh == "" {
		return nil, g.failUnauthorized()
	}

	g.metrics.Inc(MetricGatewayRetry)
	resp, err = g.exchange(ctx, method, path, body, fresh)
	if err != nil {
		return nil, err
	}

	switch g.classify(resp, path, true) {
	case outcomeOK:
		g.noteServerUp()
		return resp, nil
	case outcomeOutage:
		return nil, g.failOutage(resp.StatusCode)
	case outcomeUnauthorized:
		return nil, g.failUnauthorized()
	default:
		g.noteServerUp()
		g.metrics.Inc(MetricGatewayRequestError)
		return nil, parseRequestError(resp)
	}
}

func (g *Gateway) exchange(ctx context.Context, method, path string, body any, token string) (*transport.Response, error) {
	resp, err := g.doer.Do(ctx, transport.Request{
		Method:      method,
		Path:        path,
		Body:        body,
		BearerToken: token,
	})
	if err != nil {
		var netErr *transport.NetworkError
		if errors.As(err, &netErr) {
			return nil, g.failOutageErr(err)
		}
		return nil, err
	}
	return resp, nil
}

func (g *Gateway) refresh(ctx context.Context) (string, error) {
	if g.hooks.RefreshAccessToken == nil {
		return "", nil
	}
	return g.hooks.RefreshAccessToken(ctx)
}

func (g *Gateway) failUnauthorized() error {
	g.metrics.Inc(MetricGatewayUnauthorized)
	if g.hooks.SessionDied != nil {
		g.hooks.SessionDied()
	}
	return ErrUnauthorized
}

func (g *Gateway) failOutage(statusCode int) error {
	g.metrics.Inc(MetricGatewayOutage)
	g.noteServerDown()
	return fmt.Errorf("%w: status %d", ErrServerUnavailable, statusCode)
}

func (g *Gateway) failOutageErr(cause error) error {
	g.metrics.Inc(MetricGatewayOutage)
	g.noteServerDown()
	return fmt.Errorf("%w: %w", ErrServerUnavailable, cause)
}

func (g *Gateway) noteServerDown() {
	if g.hooks.ServerDown != nil {
		g.hooks.ServerDown()
	}
}

func (g *Gateway) noteServerUp() {
	if g.hooks.ServerUp != nil {
		g.hooks.ServerUp()
	}
}

func (g *Gateway) isBootstrapRoute(path string) bool {
	for _, route := range g.bootstrapRoutes {
		if route != "" && strings.HasPrefix(path, route) {
			return true
		}
	}
	return false
}
