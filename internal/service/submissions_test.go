package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/mocks"
	"github.com/tarpehcare/portal/internal/observability/notify"
)

// recordingSink captures notification events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
	done   chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{done: make(chan struct{}, 8)}
}

func (r *recordingSink) Send(_ context.Context, event notify.Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingSink) wait(t *testing.T) notify.Event {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func newSubmissionService(t *testing.T, sink notify.Sink) (*mocks.MockIntakeRepository, *mocks.MockBookingRepository, *SubmissionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	intakes := mocks.NewMockIntakeRepository(ctrl)
	bookings := mocks.NewMockBookingRepository(ctrl)
	service := NewSubmissionService(SubmissionServiceOptions{
		Intakes:  intakes,
		Bookings: bookings,
		Notifier: sink,
	})
	return intakes, bookings, service
}

func validIntakeRequest() *model.CreateIntakeRequest {
	return &model.CreateIntakeRequest{
		ContactName:   "Sam Cole",
		ContactEmail:  "sam@example.com",
		RecipientName: "Ruth Cole",
		CareNeeds:     "Companionship three mornings a week.",
	}
}

func TestSubmissionService_SubmitIntake_Success(t *testing.T) {
	t.Parallel()
	sink := newRecordingSink()
	intakes, _, service := newSubmissionService(t, sink)
	ctx := context.Background()

	req := validIntakeRequest()
	expected := &model.IntakeSubmission{
		ID:            "intake-1",
		ContactName:   "Sam Cole",
		RecipientName: "Ruth Cole",
		Status:        model.SubmissionStatusNew,
		CreatedAt:     time.Now(),
	}
	intakes.EXPECT().Create(ctx, req).Return(expected, nil).Times(1)

	result, err := service.SubmitIntake(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, result)

	event := sink.wait(t)
	assert.Equal(t, notify.KindIntakeReceived, event.Kind)
	assert.Equal(t, "Sam Cole", event.Fields["contact"])
}

func TestSubmissionService_SubmitIntake_ValidationError(t *testing.T) {
	t.Parallel()
	_, _, service := newSubmissionService(t, nil)

	_, err := service.SubmitIntake(context.Background(), &model.CreateIntakeRequest{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmissionService_SubmitIntake_NoNotifierStillSucceeds(t *testing.T) {
	t.Parallel()
	intakes, _, service := newSubmissionService(t, nil)
	ctx := context.Background()

	req := validIntakeRequest()
	intakes.EXPECT().Create(ctx, req).Return(&model.IntakeSubmission{ID: "intake-1"}, nil).Times(1)

	_, err := service.SubmitIntake(ctx, req)
	require.NoError(t, err)
}

func TestSubmissionService_SubmitBooking_Success(t *testing.T) {
	t.Parallel()
	sink := newRecordingSink()
	_, bookings, service := newSubmissionService(t, sink)
	ctx := context.Background()

	start := time.Now().Add(7 * 24 * time.Hour)
	req := &model.CreateBookingRequest{
		ContactName:    "Sam Cole",
		ContactEmail:   "sam@example.com",
		Service:        model.BookingServicePersonalCare,
		PreferredStart: &start,
	}
	expected := &model.BookingRequest{
		ID:             "booking-1",
		ContactName:    "Sam Cole",
		Service:        model.BookingServicePersonalCare,
		PreferredStart: &start,
		Status:         model.SubmissionStatusNew,
		CreatedAt:      time.Now(),
	}
	bookings.EXPECT().Create(ctx, req).Return(expected, nil).Times(1)

	result, err := service.SubmitBooking(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, result)

	event := sink.wait(t)
	assert.Equal(t, notify.KindBookingReceived, event.Kind)
	assert.Equal(t, "personal_care", event.Fields["service"])
	assert.NotEmpty(t, event.Fields["preferred_start"])
}

func TestSubmissionService_SubmitBooking_UnknownService(t *testing.T) {
	t.Parallel()
	_, _, service := newSubmissionService(t, nil)

	req := &model.CreateBookingRequest{
		ContactName:  "Sam Cole",
		ContactEmail: "sam@example.com",
		Service:      "dog walking",
	}
	_, err := service.SubmitBooking(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmissionService_UpdateIntakeStatus(t *testing.T) {
	t.Parallel()
	intakes, _, service := newSubmissionService(t, nil)
	ctx := context.Background()

	intakes.EXPECT().
		UpdateStatus(ctx, "intake-1", model.SubmissionStatusReviewed).
		Return(&model.IntakeSubmission{ID: "intake-1", Status: model.SubmissionStatusReviewed}, nil).
		Times(1)

	result, err := service.UpdateIntakeStatus(ctx, "intake-1", model.SubmissionStatusReviewed)

	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusReviewed, result.Status)
}

func TestSubmissionService_UpdateIntakeStatus_Invalid(t *testing.T) {
	t.Parallel()
	_, _, service := newSubmissionService(t, nil)

	_, err := service.UpdateIntakeStatus(context.Background(), "intake-1", "bogus")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubmissionService_ListBookings_StatusFilter(t *testing.T) {
	t.Parallel()
	_, bookings, service := newSubmissionService(t, nil)
	ctx := context.Background()

	status := model.SubmissionStatusNew
	bookings.EXPECT().
		ListWithOptions(ctx, gomock.Cond(func(opts model.SubmissionsListOptions) bool {
			return opts.Status != nil && *opts.Status == status && opts.Limit == defaultListLimit
		})).
		Return([]*model.BookingRequest{{ID: "booking-1"}}, nil).
		Times(1)

	result, err := service.ListBookings(ctx, model.SubmissionsListOptions{Status: &status})

	require.NoError(t, err)
	assert.Len(t, result, 1)
}
