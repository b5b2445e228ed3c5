package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

const maxPortalListLimit = 100

// CaregiverPortalHandlers serves the caregiver's own view: profile, shifts,
// and the check-in flow. Every operation is scoped to the session's caregiver
// profile; caregivers never see another caregiver's schedule.
type CaregiverPortalHandlers struct {
	Caregivers *service.CaregiverService
	Shifts     *service.ShiftService
}

// Profile handles GET /caregiver/profile.
func (h *CaregiverPortalHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	caregiver, err := h.Caregivers.GetOwnProfile(r.Context(), session.ProfileID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, caregiver)
}

// Dashboard handles GET /caregiver/dashboard: profile plus the upcoming
// scheduled shifts in one payload.
func (h *CaregiverPortalHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	caregiver, err := h.Caregivers.GetOwnProfile(r.Context(), session.ProfileID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	status := model.ShiftStatusScheduled
	shifts, err := h.Shifts.ListForCaregiver(r.Context(), session.ProfileID, model.ShiftsListOptions{
		Limit:  20,
		Status: &status,
		Sort:   "starts_at",
		Dir:    "asc",
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"profile":         caregiver,
		"upcoming_shifts": shifts,
	})
}

// ListShifts handles GET /caregiver/shifts. Caller-supplied caregiver or
// client filters are overridden by the session scope.
func (h *CaregiverPortalHandlers) ListShifts(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPortalListLimit)
	opts := shiftListOptionsFromQuery(r)
	opts.Limit = limit
	opts.Offset = offset

	shifts, err := h.Shifts.ListForCaregiver(r.Context(), session.ProfileID, opts)
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

// GetShift handles GET /caregiver/shifts/{id}. Shifts belonging to another
// caregiver read as missing.
func (h *CaregiverPortalHandlers) GetShift(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	shift, err := h.Shifts.GetForCaregiver(r.Context(), id, session.ProfileID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shift)
}

// CheckIn handles POST /checkin/shifts/{id}/in.
func (h *CaregiverPortalHandlers) CheckIn(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	shift, err := h.Shifts.CheckIn(r.Context(), id, session.ProfileID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shift)
}

// checkOutRequest is the optional POST /checkin/shifts/{id}/out body.
type checkOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// CheckOut handles POST /checkin/shifts/{id}/out.
func (h *CaregiverPortalHandlers) CheckOut(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeMissingShiftID(w)
		return
	}

	var req checkOutRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	shift, err := h.Shifts.CheckOut(r.Context(), id, session.ProfileID, req.Notes)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, shift)
}

// writeMissingSession covers the case of a portal handler reached without the
// guard having stamped a session. It indicates a routing bug, not user error.
func writeMissingSession(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
