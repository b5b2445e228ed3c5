package model

import (
	"errors"
	"strings"
	"time"
)

// ShiftStatus tracks a shift from scheduling through completion.
// scheduled -> in_progress (check-in) -> completed (check-out);
// scheduled -> missed when the window elapses without a check-in.
type ShiftStatus string

const (
	ShiftStatusScheduled  ShiftStatus = "scheduled"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusMissed     ShiftStatus = "missed"
)

// Valid reports whether the shift status is supported.
func (s ShiftStatus) Valid() bool {
	switch s {
	case ShiftStatusScheduled, ShiftStatusInProgress, ShiftStatusCompleted, ShiftStatusMissed:
		return true
	default:
		return false
	}
}

// Shift represents a scheduled visit by a caregiver to a client.
type Shift struct {
	ID           string      `json:"id"           db:"id"`
	CaregiverID  string      `json:"caregiver_id" db:"caregiver_id"`
	ClientID     string      `json:"client_id"    db:"client_id"`
	StartsAt     time.Time   `json:"starts_at"    db:"starts_at"`
	EndsAt       time.Time   `json:"ends_at"      db:"ends_at"`
	Status       ShiftStatus `json:"status"       db:"status"`
	CheckedInAt  *time.Time  `json:"checked_in_at,omitempty"  db:"checked_in_at"`
	CheckedOutAt *time.Time  `json:"checked_out_at,omitempty" db:"checked_out_at"`
	Notes        *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time   `json:"created_at"   db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"   db:"updated_at"`
}

// ShiftsListOptions controls paging and filtering for listing shifts.
type ShiftsListOptions struct {
	Limit       int
	Offset      int
	CaregiverID *string      // exact match
	ClientID    *string      // exact match
	ClientIDs   []string     // family scoping: any of the linked clients
	Status      *ShiftStatus // exact match
	From        *time.Time   // starts_at >= From
	To          *time.Time   // starts_at < To
	Sort        string       // allowed: "starts_at", "created_at"
	Dir         string       // allowed: "asc", "desc"
}

// CreateShiftRequest represents parameters to schedule a Shift.
type CreateShiftRequest struct {
	CaregiverID string    `json:"caregiver_id"`
	ClientID    string    `json:"client_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Notes       *string   `json:"notes,omitempty"`
}

// UpdateShiftRequest represents parameters to reschedule or annotate a Shift.
// Status transitions happen through check-in/check-out, not through updates.
type UpdateShiftRequest struct {
	CaregiverID *string    `json:"caregiver_id,omitempty"`
	ClientID    *string    `json:"client_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// Validate validates CreateShiftRequest.
func (r *CreateShiftRequest) Validate() error {
	if strings.TrimSpace(r.CaregiverID) == "" {
		return errors.New("caregiver_id is required")
	}
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
		return errors.New("starts_at and ends_at are required")
	}
	if !r.EndsAt.After(r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateShiftRequest.
func (r *UpdateShiftRequest) HasUpdates() bool {
	return r.CaregiverID != nil || r.ClientID != nil || r.StartsAt != nil || r.EndsAt != nil || r.Notes != nil
}

// Validate validates UpdateShiftRequest.
func (r *UpdateShiftRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.CaregiverID != nil && strings.TrimSpace(*r.CaregiverID) == "" {
		return errors.New("caregiver_id cannot be empty")
	}
	if r.ClientID != nil && strings.TrimSpace(*r.ClientID) == "" {
		return errors.New("client_id cannot be empty")
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}

// CanCheckIn reports whether a check-in is a legal transition.
func (s *Shift) CanCheckIn() bool {
	return s.Status == ShiftStatusScheduled
}

// CanCheckOut reports whether a check-out is a legal transition.
func (s *Shift) CanCheckOut() bool {
	return s.Status == ShiftStatusInProgress
}
