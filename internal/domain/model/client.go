package model

import (
	"errors"
	"strings"
	"time"
)

// CareLevel classifies the intensity of care a client receives.
type CareLevel string

const (
	CareLevelCompanion CareLevel = "companion"
	CareLevelPersonal  CareLevel = "personal"
	CareLevelSkilled   CareLevel = "skilled"
)

// Valid reports whether the care level is supported.
func (l CareLevel) Valid() bool {
	switch l {
	case CareLevelCompanion, CareLevelPersonal, CareLevelSkilled:
		return true
	default:
		return false
	}
}

// ClientStatus tracks whether a client currently receives service.
type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "active"
	ClientStatusOnHold     ClientStatus = "on_hold"
	ClientStatusDischarged ClientStatus = "discharged"
)

// Valid reports whether the client status is supported.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusActive, ClientStatusOnHold, ClientStatusDischarged:
		return true
	default:
		return false
	}
}

// Client represents a person receiving home care. Family members are linked
// to clients through the family_member_clients join table; shifts reference
// clients directly.
type Client struct {
	ID        string       `json:"id"         db:"id"`
	FirstName string       `json:"first_name" db:"first_name"`
	LastName  string       `json:"last_name"  db:"last_name"`
	Address   *string      `json:"address,omitempty" db:"address"`
	CareLevel CareLevel    `json:"care_level" db:"care_level"`
	Status    ClientStatus `json:"status"     db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// ClientsListOptions controls paging and filtering for listing clients.
type ClientsListOptions struct {
	Limit  int
	Offset int
	Q      *string       // substring match on last_name (ILIKE)
	Status *ClientStatus // exact match
	Sort   string        // allowed: "created_at", "last_name"
	Dir    string        // allowed: "asc", "desc"
}

// CreateClientRequest represents parameters to create a Client.
type CreateClientRequest struct {
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Address   *string      `json:"address,omitempty"`
	CareLevel CareLevel    `json:"care_level"`
	Status    ClientStatus `json:"status,omitempty"`
}

// UpdateClientRequest represents parameters to update a Client.
type UpdateClientRequest struct {
	FirstName *string       `json:"first_name,omitempty"`
	LastName  *string       `json:"last_name,omitempty"`
	Address   *string       `json:"address,omitempty"`
	CareLevel *CareLevel    `json:"care_level,omitempty"`
	Status    *ClientStatus `json:"status,omitempty"`
}

// Validate validates CreateClientRequest.
func (r *CreateClientRequest) Validate() error {
	if err := validatePersonName(r.FirstName, r.LastName); err != nil {
		return err
	}
	r.CareLevel = CareLevel(strings.ToLower(strings.TrimSpace(string(r.CareLevel))))
	if !r.CareLevel.Valid() {
		return errors.New("invalid care_level")
	}
	if r.Status == "" {
		r.Status = ClientStatusActive
	}
	r.Status = ClientStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateClientRequest.
func (r *UpdateClientRequest) HasUpdates() bool {
	return r.FirstName != nil || r.LastName != nil || r.Address != nil || r.CareLevel != nil || r.Status != nil
}

// Validate validates UpdateClientRequest.
func (r *UpdateClientRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("first_name cannot be empty")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return errors.New("last_name cannot be empty")
	}
	if r.CareLevel != nil {
		level := CareLevel(strings.ToLower(strings.TrimSpace(string(*r.CareLevel))))
		if !level.Valid() {
			return errors.New("invalid care_level")
		}
		*r.CareLevel = level
	}
	if r.Status != nil {
		status := ClientStatus(strings.ToLower(strings.TrimSpace(string(*r.Status))))
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
