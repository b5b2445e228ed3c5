package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents which portal area a session is entitled to.
// Roles are disjoint: a family session must never reach caregiver or admin
// data and vice versa, so there is no hierarchy between them.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCaregiver Role = "caregiver"
	RoleFamily    Role = "family"
	RoleGuest     Role = "guest"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCaregiver, RoleFamily, RoleGuest:
		return true
	default:
		return false
	}
}

// Identity represents the authenticated principal returned by a credential
// check or an IdP. Adapters map provider-specific shapes into this struct.
type Identity struct {
	UserID    string // stable identifier (local identity id or OIDC sub)
	FirstName string
	LastName  string
	Email     string
	ExpiresAt time.Time // absolute expiry of the authentication
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier. Role and the profile fields are stamped
// by the role resolver at login; ClientIDs carries the family member's linked
// client ids so family-portal reads can be scoped without another lookup.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ProfileID string    `json:"profile_id,omitempty"` // caregiver or family member row id
	ClientIDs []string  `json:"client_ids,omitempty"` // family role only
	ExpiresAt time.Time `json:"expires_at"`
}

// IsGuest returns true if the session carries no resolved role.
func (s Session) IsGuest() bool { return s.Role == RoleGuest || s.Role == "" }

// CanAccessClient reports whether the session may read records for the given
// client id. Admins see every client; family members only the clients they
// are linked to; caregivers are scoped by shift assignment at the query layer
// and never through this check.
func (s Session) CanAccessClient(clientID string) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleFamily:
		for _, id := range s.ClientIDs {
			if id == clientID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
