package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

// ShiftAdminHandlers provides the admin CRUD surface for shifts.
type ShiftAdminHandlers struct {
	Svc *service.ShiftService
}

// Create handles POST /admin/shifts.
func (h *ShiftAdminHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateShiftRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	shift, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, shift)
}

// List handles GET /admin/shifts with pagination and optional filters.
func (h *ShiftAdminHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)

	opts := shiftListOptionsFromQuery(r)
	opts.Limit = limit
	opts.Offset = offset

	shifts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"shifts": shifts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /admin/shifts/{id}.
func (h *ShiftAdminHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	shift, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shift)
}

// Update handles PUT /admin/shifts/{id}. Status is not updatable here;
// transitions go through check-in and check-out.
func (h *ShiftAdminHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	var req model.UpdateShiftRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	shift, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shift)
}

// Delete handles DELETE /admin/shifts/{id}.
func (h *ShiftAdminHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// shiftListOptionsFromQuery parses the shared shift filter params. Paging is
// left to the caller since each area clamps differently.
func shiftListOptionsFromQuery(r *http.Request) model.ShiftsListOptions {
	opts := model.ShiftsListOptions{
		CaregiverID: queryStringPtr(r, "caregiver_id"),
		ClientID:    queryStringPtr(r, "client_id"),
		From:        queryTimePtr(r, "from"),
		To:          queryTimePtr(r, "to"),
		Sort:        r.URL.Query().Get("sort"),
		Dir:         r.URL.Query().Get("dir"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.ShiftStatus(s)
		opts.Status = &status
	}
	return opts
}

func writeMissingShiftID(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "invalid_path",
		Err:     errors.New("shift id is required"),
	})
}
