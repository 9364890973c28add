package gateAuth

import (
	"context"
	"log"

	"github.com/gatentry/gateAuth/store"
)

// Logout tears the session down: credentials, user, roles, and the shared
// current hub are cleared; the identity ID survives so the device keeps its
// identity continuity across sessions. The operation is idempotent under
// concurrency — near-simultaneous triggers produce exactly one state
// transition and one storage write.
func (m *Manager) Logout(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if m.loggingOut || (m.restored && m.record.IsEmpty() && m.record.User == nil) {
		m.mu.Unlock()
		m.metricInc(MetricLogoutDeduped)
		return nil
	}
	m.loggingOut = true
	wasAuthenticated := m.record.HasBearerPair()
	next := store.Record{
		IdentityID:   m.record.IdentityID,
		TokenVersion: m.record.TokenVersion,
	}
	m.mu.Unlock()

	// The guard above keeps this a single writer; persist before the
	// observable state flips so a crash cannot resurrect the session.
	saveErr := m.store.Save(ctx, next)
	if saveErr != nil {
		log.Print("gateAuth: session store write failed during logout")
	}

	m.mu.Lock()
	m.record = next
	m.currentHub = ""
	m.loggingOut = false
	m.mu.Unlock()

	m.metricInc(MetricLogout)
	if wasAuthenticated {
		m.sessionExpired.Store(true)
		m.emit(SessionEvent{Type: EventSessionExpired, Status: StatusUnauthenticated})
	}
	m.emit(SessionEvent{Type: EventLoggedOut, Status: StatusUnauthenticated})
	m.emit(SessionEvent{Type: EventStatusChanged, Status: StatusUnauthenticated})
	return saveErr
}

// HandleUnauthorized is the Gateway's session-died notification. While a
// server-unavailable condition is active it is a no-op: an outage must never
// masquerade as a logout. Otherwise it performs the (deduped) logout.
func (m *Manager) HandleUnauthorized() {
	if m.outage.Load() {
		m.metricInc(MetricUnauthorizedSuppressed)
		return
	}
	_ = m.Logout(context.Background())
}

func (m *Manager) noteServerDown() {
	if m.outage.CompareAndSwap(false, true) {
		m.emit(SessionEvent{Type: EventServerDown})
	}
}

func (m *Manager) noteServerUp() {
	if m.outage.CompareAndSwap(true, false) {
		m.emit(SessionEvent{Type: EventServerUp})
	}
}
