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

func newClientService(t *testing.T) (*mocks.MockClientRepository, *ClientService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockClientRepository(ctrl)
	service := NewClientService(ClientServiceOptions{Clients: repo})
	return repo, service
}

func TestClientService_Create_Success(t *testing.T) {
	t.Parallel()
	repo, service := newClientService(t)

	ctx := context.Background()
	req := &model.CreateClientRequest{
		FirstName: "Agnes",
		LastName:  "Tarpeh",
		CareLevel: model.CareLevelCompanion,
	}
	expected := &model.Client{
		ID:        "client-1",
		FirstName: "Agnes",
		LastName:  "Tarpeh",
		CareLevel: model.CareLevelCompanion,
		Status:    model.ClientStatusActive,
		CreatedAt: time.Now(),
	}

	repo.EXPECT().Create(ctx, req).Return(expected, nil).Times(1)

	result, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestClientService_Create_ValidationError(t *testing.T) {
	t.Parallel()
	_, service := newClientService(t)

	_, err := service.Create(context.Background(), &model.CreateClientRequest{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClientService_Get_EmptyID(t *testing.T) {
	t.Parallel()
	_, service := newClientService(t)

	_, err := service.Get(context.Background(), " ")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClientService_List_ClampsPaging(t *testing.T) {
	t.Parallel()
	repo, service := newClientService(t)
	ctx := context.Background()

	repo.EXPECT().
		ListWithOptions(ctx, model.ClientsListOptions{Limit: maxListLimit}).
		Return([]*model.Client{}, nil).
		Times(1)

	_, err := service.List(ctx, model.ClientsListOptions{Limit: 10_000, Offset: -5})
	require.NoError(t, err)
}

func TestClientService_ListForFamily_Scoped(t *testing.T) {
	t.Parallel()
	repo, service := newClientService(t)
	ctx := context.Background()

	expected := []*model.Client{{ID: "client-a"}, {ID: "client-b"}}
	repo.EXPECT().GetByIDs(ctx, []string{"client-a", "client-b"}).Return(expected, nil).Times(1)

	result, err := service.ListForFamily(ctx, []string{"client-a", "client-b"})

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestClientService_ListForFamily_NoLinksReturnsEmpty(t *testing.T) {
	t.Parallel()
	_, service := newClientService(t)

	result, err := service.ListForFamily(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestClientService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	repo, service := newClientService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, "missing").Return(false, nil).Times(1)

	err := service.Delete(ctx, "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
