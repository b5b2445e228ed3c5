package model

import (
	"errors"
	"strings"
	"time"
)

// FamilyMember represents a family-portal account in the role directory.
// AuthUserID is the lookup key binding an authenticated identity to this
// profile; a family member is linked to one or more clients through the
// family_member_clients join table and must never read data for any other
// client.
type FamilyMember struct {
	ID         string    `json:"id"           db:"id"`
	AuthUserID string    `json:"auth_user_id" db:"auth_user_id"`
	Email      string    `json:"email"        db:"email"`
	FirstName  string    `json:"first_name"   db:"first_name"`
	LastName   string    `json:"last_name"    db:"last_name"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt  time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"   db:"updated_at"`
}

// CreateFamilyMemberRequest represents parameters to create a FamilyMember.
type CreateFamilyMemberRequest struct {
	AuthUserID string   `json:"auth_user_id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Phone      *string  `json:"phone,omitempty"`
	ClientIDs  []string `json:"client_ids"`
}

// Validate validates CreateFamilyMemberRequest.
func (r *CreateFamilyMemberRequest) Validate() error {
	if strings.TrimSpace(r.AuthUserID) == "" {
		return errors.New("auth_user_id is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validatePersonName(r.FirstName, r.LastName); err != nil {
		return err
	}
	if len(r.ClientIDs) == 0 {
		return errors.New("at least one linked client is required")
	}
	for _, id := range r.ClientIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("client id cannot be empty")
		}
	}
	return nil
}

// UpdateFamilyMemberLinksRequest replaces the set of clients a family member
// is linked to.
type UpdateFamilyMemberLinksRequest struct {
	ClientIDs []string `json:"client_ids"`
}

// Validate validates UpdateFamilyMemberLinksRequest.
func (r *UpdateFamilyMemberLinksRequest) Validate() error {
	if len(r.ClientIDs) == 0 {
		return errors.New("at least one linked client is required")
	}
	for _, id := range r.ClientIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("client id cannot be empty")
		}
	}
	return nil
}
