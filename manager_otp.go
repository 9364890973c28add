package gateAuth

import (
	"context"
	"net/http"
)

// SendOTP requests a one-time password for the given phone number using the
// guest credential.
func (m *Manager) SendOTP(ctx context.Context, phoneNo string) error {
	m.mu.Lock()
	guest := m.record.GuestToken
	m.mu.Unlock()

	if guest == "" {
		return ErrNoGuestToken
	}

	_, err := m.gateway.Send(ctx, http.MethodPost, m.cfg.Endpoints.SendOTP, sendOTPRequest{PhoneNo: phoneNo}, WithBearer(guest))
	if err != nil {
		m.metricInc(MetricOTPSendFailure)
		return err
	}
	m.metricInc(MetricOTPSent)
	return nil
}

// VerifyOTP confirms the one-time password and upgrades the session: the
// guest token is cleared, the bearer pair, user, roles, and selected hub are
// stored, and the token version is bumped. This is the only path that
// increments the token version.
func (m *Manager) VerifyOTP(ctx context.Context, phoneNo, otp string) error {
	m.mu.Lock()
	guest := m.record.GuestToken
	alreadyAuthenticated := m.record.HasBearerPair()
	m.mu.Unlock()

	if alreadyAuthenticated {
		return ErrAlreadyAuthenticated
	}
	if guest == "" {
		return ErrNoGuestToken
	}

	resp, err := m.gateway.Send(ctx, http.MethodPost, m.cfg.Endpoints.VerifyOTP, verifyOTPRequest{PhoneNo: phoneNo, OTP: otp}, WithBearer(guest))
	if err != nil {
		m.metricInc(MetricVerifyFailure)
		return err
	}

	var data verifyOTPData
	if err := decodeEnvelope(resp, &data); err != nil {
		m.metricInc(MetricVerifyFailure)
		return err
	}
	if data.AccessToken == "" || data.RefreshToken == "" {
		m.metricInc(MetricVerifyFailure)
		return ErrMalformedResponse
	}

	verified, err := parseVerifiedUser(data.User)
	if err != nil {
		m.metricInc(MetricVerifyFailure)
		return err
	}

	m.mu.Lock()
	next := m.record.Clone()
	next.GuestToken = ""
	next.AccessToken = data.AccessToken
	next.RefreshToken = data.RefreshToken
	next.User = &verified.Profile
	next.Roles = verified.Roles
	next.SelectedHubID = verified.HubID
	next.TokenVersion = m.record.TokenVersion + 1
	if data.Identity != nil && data.Identity.ID != "" {
		next.IdentityID = data.Identity.ID
	}
	if err := m.store.Save(ctx, next); err != nil {
		m.mu.Unlock()
		m.metricInc(MetricVerifyFailure)
		return err
	}
	m.record = next
	m.currentHub = verified.HubID
	m.mu.Unlock()

	m.metricInc(MetricVerifySuccess)
	m.emit(SessionEvent{Type: EventAuthenticated, Status: StatusAuthenticated})
	m.emit(SessionEvent{Type: EventStatusChanged, Status: StatusAuthenticated})
	return nil
}
