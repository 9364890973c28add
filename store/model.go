package store

// UserProfile is the authenticated user identity carried inside [Record].
// It is set by OTP verification and cleared by logout.
type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	UserType string   `json:"userType,omitempty"`
	Contacts []string `json:"contacts,omitempty"`
}

// Record is the single persisted unit of truth for a session.
//
// At steady state exactly one of GuestToken or the AccessToken/RefreshToken
// pair is populated; a logged-in session clears the guest token.
// TokenVersion is monotonically non-decreasing and is bumped exactly once
// per credential upgrade.
type Record struct {
	GuestToken    string       `json:"guestToken"`
	IdentityID    string       `json:"identityId"`
	AccessToken   string       `json:"accessToken"`
	RefreshToken  string       `json:"refreshToken"`
	TokenVersion  int          `json:"tokenVersion"`
	User          *UserProfile `json:"user,omitempty"`
	Roles         []string     `json:"roles,omitempty"`
	SelectedHubID string       `json:"selectedHubId,omitempty"`
}

// HasBearerPair reports whether both the access and refresh token are present.
func (r Record) HasBearerPair() bool {
	return r.AccessToken != "" && r.RefreshToken != ""
}

// HasGuest reports whether a guest token is present.
func (r Record) HasGuest() bool {
	return r.GuestToken != ""
}

// IsEmpty reports whether the record carries no credential of any kind.
// IdentityID is deliberately excluded: identity survives logout.
func (r Record) IsEmpty() bool {
	return r.GuestToken == "" && r.AccessToken == "" && r.RefreshToken == ""
}

// Clone returns a deep copy so callers can hand records out without
// aliasing the stored slices.
func (r Record) Clone() Record {
	out := r
	if r.User != nil {
		user := *r.User
		if len(r.User.Contacts) > 0 {
			user.Contacts = append([]string(nil), r.User.Contacts...)
		}
		out.User = &user
	}
	if len(r.Roles) > 0 {
		out.Roles = append([]string(nil), r.Roles...)
	}
	return out
}
