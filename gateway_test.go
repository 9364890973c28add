package gateAuth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gatentry/gateAuth/transport"
)

func TestGatewayAttachesStoredAccessToken(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		if req.BearerToken != "access-token-1" {
			return jsonResponse(http.StatusUnauthorized, `{}`), nil
		}
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	})

	m, _ := restoredManager(t, doer, authedRecord())

	resp, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !resp.IsSuccess() {
		t.Fatalf("expected success, got status %d", resp.StatusCode)
	}
	if got := doer.callCount("/bff/things"); got != 1 {
		t.Fatalf("expected 1 exchange, got %d", got)
	}
}

func TestGatewayRefreshesAndRetriesOnceAfter401(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		switch req.Path {
		case "/auth/refresh":
			if req.BearerToken != "refresh-token-1" {
				return jsonResponse(http.StatusUnauthorized, `{}`), nil
			}
			return jsonResponse(http.StatusOK, `{"success":true,"data":{"accessToken":"access-token-2","refreshToken":"refresh-token-2"}}`), nil
		default:
			if req.BearerToken != "access-token-2" {
				return jsonResponse(http.StatusUnauthorized, `{"title":"Unauthorized"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"ok":true}`), nil
		}
	})

	m, mem := restoredManager(t, doer, authedRecord())

	resp, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !resp.IsSuccess() {
		t.Fatalf("expected success after retry, got status %d", resp.StatusCode)
	}

	if got := doer.callCount("/bff/things"); got != 2 {
		t.Fatalf("expected exactly 2 exchanges, got %d", got)
	}
	if got := doer.callCount("/auth/refresh"); got != 1 {
		t.Fatalf("expected exactly 1 refresh call, got %d", got)
	}

	persisted, err := mem.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if persisted.AccessToken != "access-token-2" || persisted.RefreshToken != "refresh-token-2" {
		t.Fatalf("expected rotated pair persisted, got %+v", persisted)
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %v", m.Status())
	}
}

func TestGatewaySecond401IsFinal(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		if req.Path == "/auth/refresh" {
			return jsonResponse(http.StatusOK, `{"success":true,"data":{"accessToken":"access-token-2","refreshToken":"refresh-token-2"}}`), nil
		}
		return jsonResponse(http.StatusUnauthorized, `{}`), nil
	})

	m, _ := restoredManager(t, doer, authedRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if got := doer.callCount("/bff/things"); got != 2 {
		t.Fatalf("expected exactly 2 exchanges, got %d", got)
	}
	if m.Status() != StatusUnauthenticated {
		t.Fatalf("expected session torn down, got %v", m.Status())
	}
}

func TestGatewayHTML401IsOutageNotLogout(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return htmlResponse(http.StatusUnauthorized), nil
	})

	m, _ := restoredManager(t, doer, authedRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if !IsServerUnavailable(err) {
		t.Fatalf("expected ErrServerUnavailable, got %v", err)
	}

	if got := doer.callCount("/auth/refresh"); got != 0 {
		t.Fatalf("expected no refresh attempt, got %d", got)
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("expected session preserved, got %v", m.Status())
	}
	if m.ServerAvailable() {
		t.Fatal("expected outage condition active")
	}
}

func TestGateway5xxIsOutage(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return jsonResponse(http.StatusBadGateway, `{}`), nil
	})

	m, _ := restoredManager(t, doer, authedRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if !IsServerUnavailable(err) {
		t.Fatalf("expected ErrServerUnavailable, got %v", err)
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("expected session preserved, got %v", m.Status())
	}
}

func TestGatewayNetworkErrorIsOutage(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return nil, &transport.NetworkError{Op: req.Method, URL: req.Path, Err: errors.New("connection refused")}
	})

	m, _ := restoredManager(t, doer, authedRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil)
	if !IsServerUnavailable(err) {
		t.Fatalf("expected ErrServerUnavailable, got %v", err)
	}
	if m.ServerAvailable() {
		t.Fatal("expected outage condition active")
	}

	// The backend recovers; the next success clears the condition.
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	})
	if _, err := m.Gateway().Send(context.Background(), http.MethodGet, "/bff/things", nil); err != nil {
		t.Fatalf("Send after recovery failed: %v", err)
	}
	if !m.ServerAvailable() {
		t.Fatal("expected outage condition cleared")
	}
}

func TestGatewayBootstrapRoute401SkipsRefresh(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{}`), nil
	})

	m, _ := restoredManager(t, doer, guestRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodPost, "/auth/otp/send", nil, WithBearer("stale-guest"))
	if !IsUnauthorized(err) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := doer.callCount("/auth/refresh"); got != 0 {
		t.Fatalf("expected no refresh attempt on auth route, got %d", got)
	}
	if got := doer.callCount("/auth/otp/send"); got != 1 {
		t.Fatalf("expected single exchange, got %d", got)
	}
}

func TestGatewayBusinessErrorSurfacesTitleAndMessage(t *testing.T) {
	doer := &fakeDoer{}
	doer.setHandler(func(req transport.Request) (*transport.Response, error) {
		return jsonResponse(http.StatusUnprocessableEntity, `{"title":"Invalid code","message":"the code did not match"}`), nil
	})

	m, _ := restoredManager(t, doer, authedRecord())

	_, err := m.Gateway().Send(context.Background(), http.MethodPost, "/bff/things", map[string]string{"x": "y"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if reqErr.Title != "Invalid code" || reqErr.Message != "the code did not match" {
		t.Fatalf("unexpected error fields: %+v", reqErr)
	}
	if reqErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", reqErr.StatusCode)
	}
	if m.Status() != StatusAuthenticated {
		t.Fatalf("expected session preserved on business error, got %v", m.Status())
	}
}

func TestGatewayWithoutAuthSendsNoBearer(t *testing.T) {
	doer := &fakeDoer{}
	m, _ := restoredManager(t, doer, authedRecord())

	if _, err := m.Gateway().Send(context.Background(), http.MethodPost, "/auth/identity", nil, WithoutAuth()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	call, ok := doer.lastCall("/auth/identity")
	if !ok {
		t.Fatal("expected identity exchange")
	}
	if call.BearerToken != "" {
		t.Fatalf("expected no bearer, got %q", call.BearerToken)
	}
}

func TestParseRequestErrorShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		title   string
		message string
	}{
		{"flat", `{"title":"T","message":"M"}`, "T", "M"},
		{"nested", `{"error":{"title":"T","message":"M"}}`, "T", "M"},
		{"flat wins", `{"title":"T1","error":{"title":"T2","message":"M2"}}`, "T1", "M2"},
		{"garbage", `not json`, "", ""},
		{"empty", ``, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseRequestError(jsonResponse(http.StatusConflict, tc.body))
			if got.Title != tc.title || got.Message != tc.message {
				t.Fatalf("got %+v, want title=%q message=%q", got, tc.title, tc.message)
			}
			if got.StatusCode != http.StatusConflict {
				t.Fatalf("expected status carried through, got %d", got.StatusCode)
			}
		})
	}
}
