package service

import (
	"context"
	"strings"

	"github.com/tarpehcare/portal/internal/core"
	domainauth "github.com/tarpehcare/portal/internal/domain/auth"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Messages core.MessageRepository
	Shifts   core.ShiftRepository
}

// MessageService manages the per-client message threads shared by the admin,
// caregiver, and family portals. Every operation checks the session's access
// to the thread's client before touching the repository.
type MessageService struct {
	messages core.MessageRepository
	shifts   core.ShiftRepository
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) *MessageService {
	return &MessageService{messages: opts.Messages, shifts: opts.Shifts}
}

// Post appends a message to a client's thread. The sender role and id come
// from the session, never from the request body.
func (s *MessageService) Post(ctx context.Context, sess domainauth.Session, req *model.CreateMessageRequest) (*model.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	senderRole, senderID, err := senderForSession(sess)
	if err != nil {
		return nil, err
	}
	if err := s.checkClientAccess(ctx, sess, req.ClientID); err != nil {
		return nil, err
	}

	return s.messages.Create(ctx, req, senderRole, senderID)
}

// ListForClient returns a client's message thread, scoped to the session.
func (s *MessageService) ListForClient(ctx context.Context, sess domainauth.Session, opts model.MessagesListOptions) ([]*model.Message, error) {
	if strings.TrimSpace(opts.ClientID) == "" {
		return nil, apperrors.Validation("client id is required")
	}
	if err := s.checkClientAccess(ctx, sess, opts.ClientID); err != nil {
		return nil, err
	}
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.messages.ListForClient(ctx, opts)
}

// MarkRead marks the thread read for the session's role and returns how many
// messages were affected.
func (s *MessageService) MarkRead(ctx context.Context, sess domainauth.Session, clientID string) (int64, error) {
	if strings.TrimSpace(clientID) == "" {
		return 0, apperrors.Validation("client id is required")
	}
	senderRole, _, err := senderForSession(sess)
	if err != nil {
		return 0, err
	}
	if err := s.checkClientAccess(ctx, sess, clientID); err != nil {
		return 0, err
	}
	return s.messages.MarkRead(ctx, clientID, senderRole)
}

// checkClientAccess enforces thread scoping. Admins reach every thread,
// family members only their linked clients, caregivers only clients they
// are or have been assigned to.
func (s *MessageService) checkClientAccess(ctx context.Context, sess domainauth.Session, clientID string) error {
	switch sess.Role {
	case domainauth.RoleAdmin:
		return nil
	case domainauth.RoleFamily:
		if !sess.CanAccessClient(clientID) {
			return apperrors.Forbidden("client is not linked to this account")
		}
		return nil
	case domainauth.RoleCaregiver:
		assigned, err := s.caregiverAssignedToClient(ctx, sess.ProfileID, clientID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperrors.Forbidden("no shifts with this client")
		}
		return nil
	default:
		return apperrors.Forbidden("role cannot access message threads")
	}
}

func (s *MessageService) caregiverAssignedToClient(ctx context.Context, caregiverID, clientID string) (bool, error) {
	if caregiverID == "" {
		return false, nil
	}
	shifts, err := s.shifts.ListWithOptions(ctx, model.ShiftsListOptions{
		Limit:       1,
		CaregiverID: &caregiverID,
		ClientID:    &clientID,
	})
	if err != nil {
		return false, err
	}
	return len(shifts) > 0, nil
}

// senderForSession maps a session to the message sender identity.
func senderForSession(sess domainauth.Session) (model.SenderRole, string, error) {
	switch sess.Role {
	case domainauth.RoleAdmin:
		return model.SenderRoleAdmin, sess.UserID, nil
	case domainauth.RoleCaregiver:
		return model.SenderRoleCaregiver, sess.ProfileID, nil
	case domainauth.RoleFamily:
		return model.SenderRoleFamily, sess.ProfileID, nil
	default:
		return "", "", apperrors.Forbidden("role cannot post messages")
	}
}
