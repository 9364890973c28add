package gateAuth

import (
	"context"
	"errors"
	"net/http"
)

// EnsureGuestIdentity runs the one-time guest identity bootstrap. It fires
// if and only if the restored record carries no token of any kind and no
// bootstrap is currently in flight; any other caller returns immediately.
// The guard is manager-lifetime state, so remounting host components cannot
// start a second fetch.
//
// A ServerUnavailable outcome leaves the state untouched and returns nil —
// an outage is not an auth error and the host retries through
// [Manager.RetryGuestIdentity]. Any other failure surfaces
// [ErrBootstrapFailed] and also leaves the guard cleared for an explicit
// retry.
func (m *Manager) EnsureGuestIdentity(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if !m.restored {
		m.mu.Unlock()
		return ErrRestoreRequired
	}
	if !m.record.IsEmpty() {
		m.mu.Unlock()
		return nil
	}
	if m.bootstrapping {
		m.mu.Unlock()
		m.metricInc(MetricBootstrapSuppressed)
		return nil
	}
	m.bootstrapping = true

	req := identityRequest{
		AppType:         m.cfg.App.Type,
		AppVersion:      m.cfg.App.Version,
		LastLoginUserID: lastLoginUserIDFromContext(ctx),
		TokenVersion:    m.record.TokenVersion,
		DeviceID:        m.resolveDeviceID(ctx),
	}
	if req.TokenVersion < 1 {
		req.TokenVersion = 1
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.bootstrapping = false
		m.mu.Unlock()
	}()

	m.metricInc(MetricBootstrapStarted)
	m.emit(SessionEvent{Type: EventBootstrapStarted})

	resp, err := m.gateway.Send(ctx, http.MethodPost, m.cfg.Endpoints.Identity, req, WithoutAuth())
	if err != nil {
		if IsServerUnavailable(err) {
			// Outage: stay unauthenticated with no user-visible error. The
			// cleared guard lets an explicit retry re-attempt.
			return nil
		}
		return m.failBootstrap(err)
	}

	var data identityData
	if err := decodeEnvelope(resp, &data); err != nil {
		return m.failBootstrap(err)
	}
	if data.GuestToken == "" || data.ID == "" {
		return m.failBootstrap(ErrMalformedResponse)
	}

	m.mu.Lock()
	next := m.record.Clone()
	next.GuestToken = data.GuestToken
	next.IdentityID = data.ID
	if next.TokenVersion < 1 {
		next.TokenVersion = 1
	}
	if err := m.store.Save(ctx, next); err != nil {
		m.mu.Unlock()
		return m.failBootstrap(err)
	}
	m.record = next
	m.mu.Unlock()

	m.metricInc(MetricBootstrapSuccess)
	m.emit(SessionEvent{Type: EventBootstrapSucceeded, Status: StatusGuest})
	m.emit(SessionEvent{Type: EventStatusChanged, Status: StatusGuest})
	return nil
}

// RetryGuestIdentity is the explicit, user-initiated re-attempt (the
// "Retry" button after an outage). It goes through the same guard: a
// bootstrap already in flight makes this a no-op.
func (m *Manager) RetryGuestIdentity(ctx context.Context) error {
	return m.EnsureGuestIdentity(ctx)
}

func (m *Manager) failBootstrap(cause error) error {
	m.metricInc(MetricBootstrapFailure)
	err := errors.Join(ErrBootstrapFailed, cause)
	m.emit(SessionEvent{Type: EventBootstrapFailed, Error: err.Error()})
	return err
}

func (m *Manager) resolveDeviceID(ctx context.Context) string {
	if id := deviceIDFromContext(ctx); id != "" {
		return id
	}
	if m.deviceID != nil {
		return m.deviceID()
	}
	return ""
}
