package gateAuth

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gatentry/gateAuth/store"
	"github.com/gatentry/gateAuth/transport"
)

// fakeDoer is a scripted transport. The handler can be swapped mid-test to
// simulate a backend that recovers or rotates credentials.
type fakeDoer struct {
	mu      sync.Mutex
	handler func(req transport.Request) (*transport.Response, error)
	calls   []transport.Request
}

func (f *fakeDoer) Do(_ context.Context, req transport.Request) (*transport.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	handler := f.handler
	f.mu.Unlock()

	if handler == nil {
		return jsonResponse(http.StatusOK, `{"success":true,"data":{}}`), nil
	}
	return handler(req)
}

func (f *fakeDoer) setHandler(handler func(req transport.Request) (*transport.Response, error)) {
	f.mu.Lock()
	f.handler = handler
	f.mu.Unlock()
}

func (f *fakeDoer) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, call := range f.calls {
		if call.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeDoer) lastCall(path string) (transport.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Path == path {
			return f.calls[i], true
		}
	}
	return transport.Request{}, false
}

// countingStore wraps a TokenStore and counts writes.
type countingStore struct {
	TokenStore
	saves atomic.Int64
}

func (c *countingStore) Save(ctx context.Context, record store.Record) error {
	c.saves.Add(1)
	return c.TokenStore.Save(ctx, record)
}

func jsonResponse(status int, body string) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

func envelopeResponse(t *testing.T, data any) *transport.Response {
	t.Helper()

	payload, err := json.Marshal(map[string]any{"success": true, "data": data})
	if err != nil {
		t.Fatalf("marshal envelope failed: %v", err)
	}
	return &transport.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       payload,
	}
}

func htmlResponse(status int) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       []byte("<!DOCTYPE html><html><body>503 Service Unavailable</body></html>"),
	}
}

func guestRecord() store.Record {
	return store.Record{
		GuestToken:   "guest-token-1",
		IdentityID:   "identity-1",
		TokenVersion: 1,
	}
}

func authedRecord() store.Record {
	return store.Record{
		IdentityID:   "identity-1",
		AccessToken:  "access-token-1",
		RefreshToken: "refresh-token-1",
		TokenVersion: 2,
		User:         &store.UserProfile{ID: "user-1", Name: "Alice"},
		Roles:        []string{"guard"},
	}
}

func newTestManager(t *testing.T, doer transport.Doer) *Manager {
	t.Helper()
	return newTestManagerWithStore(t, doer, store.NewMemory())
}

func newTestManagerWithStore(t *testing.T, doer transport.Doer, ts TokenStore) *Manager {
	t.Helper()

	m, err := New().
		WithTransport(doer).
		WithTokenStore(ts).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

// restoredManager builds a manager over a pre-seeded store and restores it.
func restoredManager(t *testing.T, doer transport.Doer, seed store.Record) (*Manager, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	if !seed.IsEmpty() || seed.IdentityID != "" {
		if err := mem.Save(context.Background(), seed); err != nil {
			t.Fatalf("seed save failed: %v", err)
		}
	}

	m := newTestManagerWithStore(t, doer, mem)
	if _, err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	return m, mem
}
