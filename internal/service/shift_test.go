package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
	"github.com/tarpehcare/portal/internal/mocks"
)

func newShiftService(t *testing.T) (*mocks.MockShiftRepository, *ShiftService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockShiftRepository(ctrl)
	service := NewShiftService(ShiftServiceOptions{Shifts: repo})
	return repo, service
}

func validShiftRequest() *model.CreateShiftRequest {
	start := time.Now().Add(24 * time.Hour)
	return &model.CreateShiftRequest{
		CaregiverID: "cg-1",
		ClientID:    "client-a",
		StartsAt:    start,
		EndsAt:      start.Add(4 * time.Hour),
	}
}

func TestShiftService_Create_Success(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	req := validShiftRequest()
	expected := &model.Shift{ID: "shift-1", CaregiverID: "cg-1", ClientID: "client-a", Status: model.ShiftStatusScheduled}
	repo.EXPECT().Create(ctx, req).Return(expected, nil).Times(1)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestShiftService_Create_RejectsInvertedWindow(t *testing.T) {
	t.Parallel()
	_, service := newShiftService(t)

	req := validShiftRequest()
	req.EndsAt = req.StartsAt.Add(-time.Hour)

	_, err := service.Create(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestShiftService_GetForCaregiver_OwnShift(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, "shift-1").
		Return(&model.Shift{ID: "shift-1", CaregiverID: "cg-1"}, nil).
		Times(1)

	result, err := service.GetForCaregiver(ctx, "shift-1", "cg-1")

	require.NoError(t, err)
	assert.Equal(t, "shift-1", result.ID)
}

func TestShiftService_GetForCaregiver_OtherCaregiverShiftReadsAsMissing(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, "shift-1").
		Return(&model.Shift{ID: "shift-1", CaregiverID: "cg-other"}, nil).
		Times(1)

	_, err := service.GetForCaregiver(ctx, "shift-1", "cg-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestShiftService_ListForCaregiver_OverridesFilters(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	otherID := "cg-other"
	repo.EXPECT().
		ListWithOptions(ctx, gomock.Cond(func(opts model.ShiftsListOptions) bool {
			return opts.CaregiverID != nil && *opts.CaregiverID == "cg-1" &&
				opts.ClientID == nil && opts.ClientIDs == nil
		})).
		Return([]*model.Shift{}, nil).
		Times(1)

	// A caller-supplied caregiver filter must not widen the scope
	_, err := service.ListForCaregiver(ctx, "cg-1", model.ShiftsListOptions{CaregiverID: &otherID})
	require.NoError(t, err)
}

func TestShiftService_ListForCaregiver_NoProfile(t *testing.T) {
	t.Parallel()
	_, service := newShiftService(t)

	_, err := service.ListForCaregiver(context.Background(), "", model.ShiftsListOptions{})

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestShiftService_ListForFamily_ScopedToLinks(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	repo.EXPECT().
		ListWithOptions(ctx, gomock.Cond(func(opts model.ShiftsListOptions) bool {
			return len(opts.ClientIDs) == 2 && opts.CaregiverID == nil && opts.ClientID == nil
		})).
		Return([]*model.Shift{{ID: "shift-1"}}, nil).
		Times(1)

	result, err := service.ListForFamily(ctx, []string{"client-a", "client-b"}, model.ShiftsListOptions{})

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestShiftService_ListForFamily_NoLinksReturnsEmpty(t *testing.T) {
	t.Parallel()
	_, service := newShiftService(t)

	result, err := service.ListForFamily(context.Background(), nil, model.ShiftsListOptions{})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestShiftService_CheckIn_Success(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	now := time.Now()
	repo.EXPECT().CheckIn(ctx, "shift-1", "cg-1").
		Return(&model.Shift{ID: "shift-1", Status: model.ShiftStatusInProgress, CheckedInAt: &now}, nil).
		Times(1)

	result, err := service.CheckIn(ctx, "shift-1", "cg-1")

	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusInProgress, result.Status)
}

func TestShiftService_CheckIn_IllegalTransitionSurfaces(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	repo.EXPECT().CheckIn(ctx, "shift-1", "cg-1").
		Return(nil, apperrors.Conflict("shift is not scheduled")).
		Times(1)

	_, err := service.CheckIn(ctx, "shift-1", "cg-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestShiftService_CheckIn_NoProfile(t *testing.T) {
	t.Parallel()
	_, service := newShiftService(t)

	_, err := service.CheckIn(context.Background(), "shift-1", "")

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestShiftService_CheckOut_Success(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	notes := "all well"
	repo.EXPECT().CheckOut(ctx, "shift-1", "cg-1", &notes).
		Return(&model.Shift{ID: "shift-1", Status: model.ShiftStatusCompleted, Notes: &notes}, nil).
		Times(1)

	result, err := service.CheckOut(ctx, "shift-1", "cg-1", &notes)

	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, result.Status)
}

func TestShiftService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, service := newShiftService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, "missing").Return(false, nil).Times(1)

	err := service.Delete(ctx, "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
