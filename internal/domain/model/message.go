package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLen = 4000

// SenderRole identifies which portal a message was written from.
type SenderRole string

const (
	SenderRoleAdmin     SenderRole = "admin"
	SenderRoleCaregiver SenderRole = "caregiver"
	SenderRoleFamily    SenderRole = "family"
)

// Valid reports whether the sender role is supported.
func (r SenderRole) Valid() bool {
	switch r {
	case SenderRoleAdmin, SenderRoleCaregiver, SenderRoleFamily:
		return true
	default:
		return false
	}
}

// Message is one entry in a client's message thread. Threads are anchored on
// the client so all three portals converse about the same person.
type Message struct {
	ID         string     `json:"id"          db:"id"`
	ClientID   string     `json:"client_id"   db:"client_id"`
	SenderRole SenderRole `json:"sender_role" db:"sender_role"`
	SenderID   string     `json:"sender_id"   db:"sender_id"`
	Body       string     `json:"body"        db:"body"`
	CreatedAt  time.Time  `json:"created_at"  db:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty" db:"read_at"`
}

// MessagesListOptions controls paging for a client's message thread.
type MessagesListOptions struct {
	Limit    int
	Offset   int
	ClientID string
	Unread   *bool // read_at IS NULL when true
}

// CreateMessageRequest represents parameters to post a message to a thread.
// SenderRole and SenderID come from the session, never from the request body.
type CreateMessageRequest struct {
	ClientID string `json:"client_id"`
	Body     string `json:"body"`
}

// Validate validates CreateMessageRequest.
func (r *CreateMessageRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	body := strings.TrimSpace(r.Body)
	if body == "" {
		return errors.New("body is required")
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return errors.New("body cannot exceed 4000 characters")
	}
	r.Body = body
	return nil
}
