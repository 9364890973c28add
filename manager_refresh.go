package gateAuth

import (
	"context"
	"errors"
	"log"
	"net/http"
)

// refreshCall is the shared in-flight refresh attempt. The slot holding it
// lives for the Manager's lifetime, not per call site: two near-simultaneous
// 401s must find the same attempt, or the second refresh would invalidate
// the first token and cause spurious 401s downstream.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// RefreshAccessToken exchanges the stored refresh token for a fresh access
// token. The operation is single-flight: every concurrent caller (including
// Gateway retries) joins the one in-flight attempt and receives its result.
//
// An empty token with a nil error means the session could not be refreshed
// and has been logged out. A ServerUnavailable error is rethrown without
// logging out — an outage is never an auth verdict.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	m.refreshMu.Lock()
	if call := m.inflight; call != nil {
		m.refreshMu.Unlock()
		m.metricInc(MetricRefreshShared)
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	m.inflight = call
	m.refreshMu.Unlock()

	// The slot is cleared regardless of outcome so the next 401 can start a
	// new attempt.
	defer func() {
		m.refreshMu.Lock()
		m.inflight = nil
		m.refreshMu.Unlock()
	}()

	token, err := m.doRefresh(ctx)
	call.token, call.err = token, err
	close(call.done)
	return token, err
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	refreshToken := m.record.RefreshToken
	m.mu.Unlock()

	if refreshToken == "" {
		m.metricInc(MetricRefreshFailure)
		_ = m.Logout(ctx)
		return "", nil
	}

	resp, err := m.gateway.Send(ctx, http.MethodPost, m.cfg.Endpoints.Refresh, nil, WithBearer(refreshToken))
	if err != nil {
		switch {
		case IsServerUnavailable(err):
			m.metricInc(MetricRefreshOutage)
			return "", err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// The caller went away; no auth verdict was reached.
			return "", err
		default:
			m.metricInc(MetricRefreshFailure)
			_ = m.Logout(ctx)
			return "", nil
		}
	}

	var data refreshData
	if err := decodeEnvelope(resp, &data); err != nil || data.AccessToken == "" {
		m.metricInc(MetricRefreshFailure)
		_ = m.Logout(ctx)
		return "", nil
	}

	m.mu.Lock()
	next := m.record.Clone()
	next.AccessToken = data.AccessToken
	if data.RefreshToken != "" {
		next.RefreshToken = data.RefreshToken
	}
	// A rotated bearer pair supersedes any stale guest credential.
	next.GuestToken = ""
	if err := m.store.Save(ctx, next); err != nil {
		// The rotation already happened server-side; dropping the new pair
		// would strand the session. Keep it in memory and report the write.
		log.Print("gateAuth: session store write failed after refresh")
	}
	m.record = next
	m.mu.Unlock()

	m.metricInc(MetricRefreshSuccess)
	return data.AccessToken, nil
}

// AccessToken returns the access token to attach to the next business call,
// refreshing proactively when the stored token's exp claim is within the
// configured leeway. Opaque tokens skip the proactive path entirely.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	token := m.record.AccessToken
	hasRefresh := m.record.RefreshToken != ""
	m.mu.Unlock()

	if token == "" || !hasRefresh {
		return token, nil
	}

	leeway := m.cfg.Refresh.ProactiveLeeway
	if leeway <= 0 || m.inspector == nil || !m.inspector.ExpiresWithin(token, leeway) {
		return token, nil
	}

	m.metricInc(MetricRefreshProactive)
	fresh, err := m.RefreshAccessToken(ctx)
	if err != nil {
		if IsServerUnavailable(err) {
			// Let the request proceed with the stale token; the Gateway
			// classifies whatever comes back.
			return token, nil
		}
		return "", err
	}
	if fresh == "" {
		return "", ErrUnauthorized
	}
	return fresh, nil
}
