package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

// CaregiverAdminHandlers provides the admin CRUD surface for caregivers.
type CaregiverAdminHandlers struct {
	Svc *service.CaregiverService
}

// Create handles POST /admin/caregivers.
func (h *CaregiverAdminHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCaregiverRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	caregiver, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, caregiver)
}

// List handles GET /admin/caregivers with pagination and optional filters.
func (h *CaregiverAdminHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)

	opts := model.CaregiversListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(r, "q"),
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.CaregiverStatus(s)
		opts.Status = &status
	}

	caregivers, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"caregivers": caregivers,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetByID handles GET /admin/caregivers/{id}.
func (h *CaregiverAdminHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("caregiver id is required")},
		)
		return
	}

	caregiver, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, caregiver)
}

// Update handles PUT /admin/caregivers/{id}.
func (h *CaregiverAdminHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("caregiver id is required")},
		)
		return
	}

	var req model.UpdateCaregiverRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	caregiver, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, caregiver)
}

// Delete handles DELETE /admin/caregivers/{id}.
func (h *CaregiverAdminHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("caregiver id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
