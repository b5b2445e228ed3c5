package service

import (
	"context"
	"strings"

	"github.com/tarpehcare/portal/internal/core"
	"github.com/tarpehcare/portal/internal/domain/model"
	apperrors "github.com/tarpehcare/portal/internal/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ClientServiceOptions groups dependencies for ClientService.
type ClientServiceOptions struct {
	Clients core.ClientRepository
}

// ClientService manages care recipient records.
type ClientService struct {
	clients core.ClientRepository
}

// NewClientService constructs a new ClientService.
func NewClientService(opts ClientServiceOptions) *ClientService {
	return &ClientService{clients: opts.Clients}
}

// Create adds a new client record. Admin only; enforced at the router.
func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.clients.Create(ctx, req)
}

// Get fetches a single client by id.
func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("client id is required")
	}
	return s.clients.GetByID(ctx, id)
}

// List returns clients matching the options, with clamped paging.
func (s *ClientService) List(ctx context.Context, opts model.ClientsListOptions) ([]*model.Client, error) {
	opts.Limit, opts.Offset = clampPaging(opts.Limit, opts.Offset)
	return s.clients.ListWithOptions(ctx, opts)
}

// ListForFamily returns only the clients linked to the family member's
// session. An empty link set yields an empty list, never all clients.
func (s *ClientService) ListForFamily(ctx context.Context, clientIDs []string) ([]*model.Client, error) {
	if len(clientIDs) == 0 {
		return []*model.Client{}, nil
	}
	return s.clients.GetByIDs(ctx, clientIDs)
}

// Update modifies an existing client record.
func (s *ClientService) Update(ctx context.Context, id string, req model.UpdateClientRequest) (*model.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("client id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.clients.Update(ctx, id, req)
}

// Delete removes a client record.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("client id is required")
	}
	deleted, err := s.clients.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFoundf("client %s not found", id)
	}
	return nil
}

// clampPaging normalizes limit/offset so a caller can never request an
// unbounded page.
func clampPaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
