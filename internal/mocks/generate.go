// Package mocks provides mock implementations for testing the portal services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockClientRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(client, nil)
package mocks

// Generate mock for CaregiverRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=caregiver_repository_mock.go github.com/tarpehcare/portal/internal/core CaregiverRepository

// Generate mock for ClientRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=client_repository_mock.go github.com/tarpehcare/portal/internal/core ClientRepository

// Generate mock for FamilyMemberRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=family_member_repository_mock.go github.com/tarpehcare/portal/internal/core FamilyMemberRepository

// Generate mock for ShiftRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=shift_repository_mock.go github.com/tarpehcare/portal/internal/core ShiftRepository

// Generate mock for MessageRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=message_repository_mock.go github.com/tarpehcare/portal/internal/core MessageRepository

// Generate mock for IntakeRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=intake_repository_mock.go github.com/tarpehcare/portal/internal/core IntakeRepository

// Generate mock for BookingRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=booking_repository_mock.go github.com/tarpehcare/portal/internal/core BookingRepository
