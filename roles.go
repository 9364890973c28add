package gateAuth

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gatentry/gateAuth/store"
)

// The verification payload is loosely typed: different backend versions name
// the same data differently. The priority order below is the single place
// that defines which shape wins; nothing else re-derives it.
//
//	roles:    "roles" before "userRoles"; entries are strings or objects
//	          keyed "name", "role", or "roleName" (nested objects use "name").
//	hubs:     "hubs" before "userHubs"; entries are strings or objects keyed
//	          "id" or "hubId" (nested "hub" objects use "id"). First hub wins.
//	contacts: "userContacts"; entries are strings or objects keyed
//	          "contactNo", "phoneNo", or "value".
type verifiedUser struct {
	Profile store.UserProfile
	Roles   []string
	HubID   string
}

func parseVerifiedUser(raw json.RawMessage) (verifiedUser, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return verifiedUser{}, ErrMalformedResponse
	}

	out := verifiedUser{
		Profile: store.UserProfile{
			ID:       flexibleString(fields["id"]),
			Name:     flexibleString(fields["name"]),
			UserType: flexibleString(fields["userType"]),
			Contacts: parseContacts(fields["userContacts"]),
		},
	}
	if out.Profile.ID == "" {
		return verifiedUser{}, ErrMalformedResponse
	}

	out.Roles = parseRoleList(fields["roles"])
	if len(out.Roles) == 0 {
		out.Roles = parseRoleList(fields["userRoles"])
	}

	out.HubID = parseFirstHub(fields["hubs"])
	if out.HubID == "" {
		out.HubID = parseFirstHub(fields["userHubs"])
	}

	return out, nil
}

func parseRoleList(raw json.RawMessage) []string {
	entries := rawList(raw)
	if len(entries) == 0 {
		return nil
	}

	roles := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := flexibleString(entry)
		if name == "" {
			name = nestedString(entry, "name", "role", "roleName")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			roles = append(roles, name)
		}
	}
	if len(roles) == 0 {
		return nil
	}
	return roles
}

func parseFirstHub(raw json.RawMessage) string {
	for _, entry := range rawList(raw) {
		if id := flexibleString(entry); id != "" {
			return id
		}
		if id := nestedString(entry, "id", "hubId"); id != "" {
			return id
		}
		var wrapper struct {
			Hub json.RawMessage `json:"hub"`
		}
		if err := json.Unmarshal(entry, &wrapper); err == nil && len(wrapper.Hub) > 0 {
			if id := nestedString(wrapper.Hub, "id"); id != "" {
				return id
			}
		}
	}
	return ""
}

func parseContacts(raw json.RawMessage) []string {
	entries := rawList(raw)
	if len(entries) == 0 {
		return nil
	}

	contacts := make([]string, 0, len(entries))
	for _, entry := range entries {
		value := flexibleString(entry)
		if value == "" {
			value = nestedString(entry, "contactNo", "phoneNo", "value")
		}
		if value != "" {
			contacts = append(contacts, value)
		}
	}
	if len(contacts) == 0 {
		return nil
	}
	return contacts
}

func rawList(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

// flexibleString accepts JSON strings and numbers; numeric IDs are common in
// older payload versions.
func flexibleString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func nestedString(raw json.RawMessage, keys ...string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for _, key := range keys {
		if value := flexibleString(fields[key]); value != "" {
			return value
		}
	}
	return ""
}

// allowedRoleFrom picks the first priority entry present in the stored role
// list. No match yields RoleNone, which is a valid state the caller handles.
func allowedRoleFrom(roles []string, priority []AllowedRole) AllowedRole {
	for _, candidate := range priority {
		for _, role := range roles {
			if role == string(candidate) {
				return candidate
			}
		}
	}
	return RoleNone
}
