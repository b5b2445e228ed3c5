package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxIntakeNotesLen = 8000

// SubmissionStatus tracks review state for public form submissions
// (intakes and booking requests share the same lifecycle).
type SubmissionStatus string

const (
	SubmissionStatusNew      SubmissionStatus = "new"
	SubmissionStatusReviewed SubmissionStatus = "reviewed"
	SubmissionStatusArchived SubmissionStatus = "archived"
)

// Valid reports whether the submission status is supported.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusReviewed, SubmissionStatusArchived:
		return true
	default:
		return false
	}
}

// ParseSubmissionStatus normalizes a status string and reports whether it is supported.
func ParseSubmissionStatus(value string) (SubmissionStatus, bool) {
	status := SubmissionStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// IntakeSubmission is a public care-needs inquiry collected from the website.
// It is created unauthenticated and only ever read by the admin portal.
type IntakeSubmission struct {
	ID            string           `json:"id"             db:"id"`
	ContactName   string           `json:"contact_name"   db:"contact_name"`
	ContactEmail  string           `json:"contact_email"  db:"contact_email"`
	ContactPhone  *string          `json:"contact_phone,omitempty" db:"contact_phone"`
	RecipientName string           `json:"recipient_name" db:"recipient_name"`
	CareNeeds     string           `json:"care_needs"     db:"care_needs"`
	Status        SubmissionStatus `json:"status"         db:"status"`
	CreatedAt     time.Time        `json:"created_at"     db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"     db:"updated_at"`
}

// SubmissionsListOptions controls paging and filtering for listing
// intakes or booking requests in the admin portal.
type SubmissionsListOptions struct {
	Limit  int
	Offset int
	Status *SubmissionStatus // exact match
}

// CreateIntakeRequest represents a public intake form submission.
type CreateIntakeRequest struct {
	ContactName   string  `json:"contact_name"`
	ContactEmail  string  `json:"contact_email"`
	ContactPhone  *string `json:"contact_phone,omitempty"`
	RecipientName string  `json:"recipient_name"`
	CareNeeds     string  `json:"care_needs"`
}

// Validate validates CreateIntakeRequest.
func (r *CreateIntakeRequest) Validate() error {
	if strings.TrimSpace(r.ContactName) == "" {
		return errors.New("contact_name is required")
	}
	if err := validateEmail(r.ContactEmail); err != nil {
		return err
	}
	if strings.TrimSpace(r.RecipientName) == "" {
		return errors.New("recipient_name is required")
	}
	needs := strings.TrimSpace(r.CareNeeds)
	if needs == "" {
		return errors.New("care_needs is required")
	}
	if utf8.RuneCountInString(needs) > maxIntakeNotesLen {
		return errors.New("care_needs cannot exceed 8000 characters")
	}
	r.CareNeeds = needs
	return nil
}
