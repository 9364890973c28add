package gateAuth

import (
	"encoding/json"

	"github.com/gatentry/gateAuth/transport"
)

// Wire envelopes for the auth endpoints. Business endpoints are opaque to
// this package; only the four auth routes have shapes the core interprets.

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type identityRequest struct {
	AppType         string `json:"appType"`
	AppVersion      string `json:"appVersion"`
	LastLoginUserID string `json:"lastLoginUserId,omitempty"`
	GuestToken      string `json:"guestToken,omitempty"`
	AccessToken     string `json:"accessToken,omitempty"`
	RefreshToken    string `json:"refreshToken,omitempty"`
	TokenVersion    int    `json:"tokenVersion"`
	DeviceID        string `json:"deviceId"`
}

type identityData struct {
	GuestToken string `json:"guestToken"`
	ID         string `json:"id"`
}

type refreshData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type sendOTPRequest struct {
	PhoneNo string `json:"phoneNo"`
}

type verifyOTPRequest struct {
	PhoneNo string `json:"phoneNo"`
	OTP     string `json:"otp"`
}

type verifyOTPData struct {
	User         json.RawMessage `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Identity     *struct {
		ID string `json:"id"`
	} `json:"identity,omitempty"`
}

func decodeEnvelope(resp *transport.Response, data any) error {
	var env envelope
	if err := resp.DecodeJSON(&env); err != nil {
		return ErrMalformedResponse
	}
	if !env.Success || len(env.Data) == 0 {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		return ErrMalformedResponse
	}
	return nil
}

// parseRequestError normalizes a non-2xx business error body. Both the flat
// shape {title, message} and the nested {error: {title, message}} occur in
// the wild; anything unreadable degrades to a bare status error.
func parseRequestError(resp *transport.Response) *RequestError {
	out := &RequestError{StatusCode: resp.StatusCode}
	if len(resp.Body) == 0 {
		return out
	}

	var flat struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Error   *struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &flat); err != nil {
		return out
	}

	out.Title = flat.Title
	out.Message = flat.Message
	if flat.Error != nil {
		if out.Title == "" {
			out.Title = flat.Error.Title
		}
		if out.Message == "" {
			out.Message = flat.Error.Message
		}
	}
	return out
}
