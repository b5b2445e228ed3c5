package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNameLen = 100

// CaregiverStatus tracks a caregiver through onboarding and offboarding.
type CaregiverStatus string

const (
	CaregiverStatusPending  CaregiverStatus = "pending"
	CaregiverStatusActive   CaregiverStatus = "active"
	CaregiverStatusInactive CaregiverStatus = "inactive"
)

// Valid reports whether the caregiver status is supported.
func (s CaregiverStatus) Valid() bool {
	switch s {
	case CaregiverStatusPending, CaregiverStatusActive, CaregiverStatusInactive:
		return true
	default:
		return false
	}
}

// ParseCaregiverStatus normalizes a status string and reports whether it is supported.
func ParseCaregiverStatus(value string) (CaregiverStatus, bool) {
	status := CaregiverStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Caregiver represents a caregiver profile in the role directory.
// The email column is the lookup key that binds a session to this profile.
type Caregiver struct {
	ID        string          `json:"id"         db:"id"`
	Email     string          `json:"email"      db:"email"`
	FirstName string          `json:"first_name" db:"first_name"`
	LastName  string          `json:"last_name"  db:"last_name"`
	Phone     *string         `json:"phone,omitempty" db:"phone"`
	Status    CaregiverStatus `json:"status"     db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CaregiversListOptions controls paging and filtering for listing caregivers.
type CaregiversListOptions struct {
	Limit  int
	Offset int
	Q      *string          // substring match on last_name (ILIKE)
	Status *CaregiverStatus // exact match
	Sort   string           // allowed: "created_at", "last_name"
	Dir    string           // allowed: "asc", "desc"
}

// CreateCaregiverRequest represents parameters to create a Caregiver.
type CreateCaregiverRequest struct {
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     *string         `json:"phone,omitempty"`
	Status    CaregiverStatus `json:"status,omitempty"`
}

// UpdateCaregiverRequest represents parameters to update a Caregiver.
type UpdateCaregiverRequest struct {
	Email     *string          `json:"email,omitempty"`
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Status    *CaregiverStatus `json:"status,omitempty"`
}

// Validate validates CreateCaregiverRequest.
func (r *CreateCaregiverRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validatePersonName(r.FirstName, r.LastName); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = CaregiverStatusPending
	}
	normalized, ok := ParseCaregiverStatus(string(r.Status))
	if !ok {
		return errors.New("invalid status")
	}
	r.Status = normalized
	return nil
}

// HasUpdates reports whether any field is set in UpdateCaregiverRequest.
func (r *UpdateCaregiverRequest) HasUpdates() bool {
	return r.Email != nil || r.FirstName != nil || r.LastName != nil || r.Phone != nil || r.Status != nil
}

// Validate validates UpdateCaregiverRequest, ensuring at least one field is set.
func (r *UpdateCaregiverRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("first_name cannot be empty")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return errors.New("last_name cannot be empty")
	}
	if r.Status != nil {
		normalized, ok := ParseCaregiverStatus(string(*r.Status))
		if !ok {
			return errors.New("invalid status")
		}
		*r.Status = normalized
	}
	return nil
}

// validateEmail checks a required, parseable email address.
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email is not a valid address")
	}
	return nil
}

// validatePersonName checks required first/last name fields.
func validatePersonName(first, last string) error {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return errors.New("first_name is required")
	}
	if last == "" {
		return errors.New("last_name is required")
	}
	if utf8.RuneCountInString(first) > maxNameLen || utf8.RuneCountInString(last) > maxNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	return nil
}
