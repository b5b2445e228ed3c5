package core

import (
	"context"
	"time"

	"github.com/tarpehcare/portal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CaregiverRepository defines the interface for caregiver directory operations.
type CaregiverRepository interface {
	Create(ctx context.Context, req *model.CreateCaregiverRequest) (*model.Caregiver, error)
	GetByID(ctx context.Context, id string) (*model.Caregiver, error)
	GetByEmail(ctx context.Context, email string) (*model.Caregiver, error)
	ListWithOptions(ctx context.Context, opts model.CaregiversListOptions) ([]*model.Caregiver, error)
	Update(ctx context.Context, id string, req model.UpdateCaregiverRequest) (*model.Caregiver, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ClientRepository defines the interface for care recipient operations.
type ClientRepository interface {
	Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Client, error)
	ListWithOptions(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error)
	Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FamilyMemberRepository defines the interface for the family role directory.
type FamilyMemberRepository interface {
	Create(ctx context.Context, req *model.CreateFamilyMemberRequest) (*model.FamilyMember, error)
	GetByID(ctx context.Context, id string) (*model.FamilyMember, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*model.FamilyMember, error)
	GetByEmail(ctx context.Context, email string) (*model.FamilyMember, error)
	LinkedClientIDs(ctx context.Context, familyMemberID string) ([]string, error)
	List(ctx context.Context, limit, offset int) ([]*model.FamilyMember, error)
	ReplaceClientLinks(ctx context.Context, familyMemberID string, req model.UpdateFamilyMemberLinksRequest) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ShiftRepository defines the interface for shift scheduling operations.
type ShiftRepository interface {
	Create(ctx context.Context, req *model.CreateShiftRequest) (*model.Shift, error)
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListWithOptions(ctx context.Context, opts model.ShiftsListOptions) ([]*model.Shift, error)
	Update(ctx context.Context, id string, req model.UpdateShiftRequest) (*model.Shift, error)
	CheckIn(ctx context.Context, id, caregiverID string) (*model.Shift, error)
	CheckOut(ctx context.Context, id, caregiverID string, notes *string) (*model.Shift, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ShiftSweepRepository defines the background sweep operations used by the
// reaper and the reminder loop.
type ShiftSweepRepository interface {
	MarkMissedShifts(ctx context.Context, grace time.Duration, batchSize int) (int64, error)
	ListUpcoming(ctx context.Context, window time.Duration, limit int) ([]*model.Shift, error)
}

// MessageRepository defines the interface for the per-client message board.
type MessageRepository interface {
	Create(ctx context.Context, req *model.CreateMessageRequest, senderRole model.SenderRole, senderID string) (*model.Message, error)
	ListForClient(ctx context.Context, opts model.MessagesListOptions) ([]*model.Message, error)
	MarkRead(ctx context.Context, clientID string, readerRole model.SenderRole) (int64, error)
	GetByID(ctx context.Context, id string) (*model.Message, error)
}

// IntakeRepository defines the interface for public intake submissions.
type IntakeRepository interface {
	Create(ctx context.Context, req *model.CreateIntakeRequest) (*model.IntakeSubmission, error)
	GetByID(ctx context.Context, id string) (*model.IntakeSubmission, error)
	ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.IntakeSubmission, error)
	UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.IntakeSubmission, error)
}

// BookingRepository defines the interface for public booking requests.
type BookingRepository interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingRequest, error)
	GetByID(ctx context.Context, id string) (*model.BookingRequest, error)
	ListWithOptions(ctx context.Context, opts model.SubmissionsListOptions) ([]*model.BookingRequest, error)
	UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.BookingRequest, error)
}

// IdentityRepository defines the interface for local credential records.
type IdentityRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.Identity, error)
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	GetByID(ctx context.Context, id string) (*model.Identity, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
