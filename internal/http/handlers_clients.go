// Package httpx provides the HTTP surface of the home-care portal service.
package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

const maxAdminListLimit = 200

// ClientHandlers provides the admin CRUD surface for care clients.
type ClientHandlers struct {
	Svc *service.ClientService
}

// Create handles POST /admin/clients.
func (h *ClientHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, client)
}

// List handles GET /admin/clients with pagination and optional filters.
func (h *ClientHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)

	opts := model.ClientsListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(r, "q"),
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.ClientStatus(s)
		opts.Status = &status
	}

	clients, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"clients": clients,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID handles GET /admin/clients/{id}.
func (h *ClientHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("client id is required")},
		)
		return
	}

	client, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, client)
}

// Update handles PUT /admin/clients/{id}.
func (h *ClientHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("client id is required")},
		)
		return
	}

	var req model.UpdateClientRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	client, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, client)
}

// Delete handles DELETE /admin/clients/{id}.
func (h *ClientHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("client id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
