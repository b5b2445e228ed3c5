package model

import (
	"errors"
	"strings"
	"time"
)

// BookingService enumerates the services offered on the booking form.
type BookingService string

const (
	BookingServiceCompanionCare BookingService = "companion_care"
	BookingServicePersonalCare  BookingService = "personal_care"
	BookingServiceRespiteCare   BookingService = "respite_care"
	BookingServiceSkilledCare   BookingService = "skilled_care"
)

// Valid reports whether the booking service is supported.
func (s BookingService) Valid() bool {
	switch s {
	case BookingServiceCompanionCare, BookingServicePersonalCare,
		BookingServiceRespiteCare, BookingServiceSkilledCare:
		return true
	default:
		return false
	}
}

// BookingRequest is a public booking form submission: who wants which
// service, starting when. Reviewed by the admin portal alongside intakes.
type BookingRequest struct {
	ID             string           `json:"id"              db:"id"`
	ContactName    string           `json:"contact_name"    db:"contact_name"`
	ContactEmail   string           `json:"contact_email"   db:"contact_email"`
	ContactPhone   *string          `json:"contact_phone,omitempty" db:"contact_phone"`
	Service        BookingService   `json:"service"         db:"service"`
	PreferredStart *time.Time       `json:"preferred_start,omitempty" db:"preferred_start"`
	Schedule       *string          `json:"schedule,omitempty"        db:"schedule"`
	Status         SubmissionStatus `json:"status"          db:"status"`
	CreatedAt      time.Time        `json:"created_at"      db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"      db:"updated_at"`
}

// CreateBookingRequest represents a public booking form submission.
type CreateBookingRequest struct {
	ContactName    string         `json:"contact_name"`
	ContactEmail   string         `json:"contact_email"`
	ContactPhone   *string        `json:"contact_phone,omitempty"`
	Service        BookingService `json:"service"`
	PreferredStart *time.Time     `json:"preferred_start,omitempty"`
	Schedule       *string        `json:"schedule,omitempty"`
}

// Validate validates CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.ContactName) == "" {
		return errors.New("contact_name is required")
	}
	if err := validateEmail(r.ContactEmail); err != nil {
		return err
	}
	r.Service = BookingService(strings.ToLower(strings.TrimSpace(string(r.Service))))
	if !r.Service.Valid() {
		return errors.New("invalid service")
	}
	return nil
}
