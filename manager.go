package gateAuth

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gatentry/gateAuth/jwt"
	"github.com/gatentry/gateAuth/store"
)

// Manager owns the session record and the derived auth state machine. It is
// the only component that writes the record; the Gateway reaches it through
// two narrow hooks (fresh-token and session-died) injected at build time.
//
// The host drives the lifecycle: Restore once at startup, then
// EnsureGuestIdentity whenever the status lands on unauthenticated. The
// bootstrap guard makes repeated invocations safe — after logout the guard
// re-arms naturally because all token fields are empty again.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	cfg       Config
	store     TokenStore
	gateway   *Gateway
	metrics   *Metrics
	events    *eventDispatcher
	inspector *jwt.Inspector
	deviceID  DeviceIDProvider

	mu            sync.Mutex
	record        store.Record
	restored      bool
	bootstrapping bool
	loggingOut    bool
	currentHub    string

	sessionExpired atomic.Bool
	outage         atomic.Bool

	refreshMu sync.Mutex
	inflight  *refreshCall
}

// Restore loads the persisted session record and resolves the initial
// status. It runs the load once; repeated calls return the already-derived
// status without touching storage.
func (m *Manager) Restore(ctx context.Context) (AuthStatus, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	m.mu.Lock()
	if m.restored {
		status := statusOf(m.record, true)
		m.mu.Unlock()
		return status, nil
	}
	m.mu.Unlock()

	record, err := m.store.Load(ctx)
	if err != nil {
		return StatusLoading, err
	}

	m.mu.Lock()
	if m.restored {
		status := statusOf(m.record, true)
		m.mu.Unlock()
		return status, nil
	}
	m.record = record
	m.restored = true
	m.currentHub = record.SelectedHubID
	status := statusOf(m.record, true)
	m.mu.Unlock()

	m.emit(SessionEvent{Type: EventStatusChanged, Status: status})
	return status, nil
}

// Status describes the status operation and its observable behavior.
//
// Status may return an error when input validation, dependency calls, or security checks fail.
// Status does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Status() AuthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return statusOf(m.record, m.restored)
}

// Record returns a copy of the current session record. Callers never observe
// a partially-updated record: all writers commit under the same lock.
func (m *Manager) Record() store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.Clone()
}

// AllowedRole describes the allowedrole operation and its observable behavior.
//
// AllowedRole may return an error when input validation, dependency calls, or security checks fail.
// AllowedRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) AllowedRole() AllowedRole {
	m.mu.Lock()
	roles := m.record.Roles
	m.mu.Unlock()
	return allowedRoleFrom(roles, m.cfg.Roles.Priority)
}

// CurrentHub describes the currenthub operation and its observable behavior.
//
// CurrentHub may return an error when input validation, dependency calls, or security checks fail.
// CurrentHub does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) CurrentHub() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentHub
}

// SelectHub sets the externally-shared current hub. The selection is
// in-memory only; logout clears it together with the credentials.
func (m *Manager) SelectHub(hubID string) {
	m.mu.Lock()
	m.currentHub = hubID
	m.mu.Unlock()
}

// ConsumeSessionExpired returns true at most once after a logout ended an
// authenticated session. The navigation layer consumes it to force
// re-authentication exactly once.
func (m *Manager) ConsumeSessionExpired() bool {
	return m.sessionExpired.Swap(false)
}

// ServerAvailable reports whether the last classified exchange reached the
// backend. While false, unauthorized notifications are suppressed.
func (m *Manager) ServerAvailable() bool {
	return !m.outage.Load()
}

// Gateway returns the request gateway all business API modules must use.
func (m *Manager) Gateway() *Gateway {
	return m.gateway
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.events != nil {
		m.events.Close()
	}
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return m.metrics.Snapshot()
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) EventsDropped() uint64 {
	if m == nil || m.events == nil {
		return 0
	}
	return m.events.Dropped()
}

func (m *Manager) currentAccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.AccessToken
}

func (m *Manager) emit(event SessionEvent) {
	if m.events == nil {
		return
	}
	m.events.Emit(context.Background(), event)
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

// statusOf derives the auth status. It is a pure function of the record and
// the restored flag; nothing else feeds it.
func statusOf(record store.Record, restored bool) AuthStatus {
	switch {
	case !restored:
		return StatusLoading
	case record.HasBearerPair():
		return StatusAuthenticated
	case record.HasGuest():
		return StatusGuest
	default:
		return StatusUnauthenticated
	}
}
