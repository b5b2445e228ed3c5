package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

// SubmissionHandlers covers both sides of the public forms: the unauthenticated
// intake/booking submission endpoints and the admin review surface.
type SubmissionHandlers struct {
	Svc *service.SubmissionService
}

// CreateIntake handles POST /api/intakes (public).
func (h *SubmissionHandlers) CreateIntake(w http.ResponseWriter, r *http.Request) {
	var req model.CreateIntakeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	intake, err := h.Svc.SubmitIntake(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, intake)
}

// CreateBooking handles POST /api/bookings (public).
func (h *SubmissionHandlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	booking, err := h.Svc.SubmitBooking(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, booking)
}

// ListIntakes handles GET /admin/intakes.
func (h *SubmissionHandlers) ListIntakes(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)
	opts := submissionListOptionsFromQuery(r)
	opts.Limit = limit
	opts.Offset = offset

	intakes, err := h.Svc.ListIntakes(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"intakes": intakes,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetIntake handles GET /admin/intakes/{id}.
func (h *SubmissionHandlers) GetIntake(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingSubmissionID(w, "intake")
		return
	}

	intake, err := h.Svc.GetIntake(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, intake)
}

// statusUpdateRequest is the PATCH {submission}/{id}/status body.
type statusUpdateRequest struct {
	Status model.SubmissionStatus `json:"status"`
}

// UpdateIntakeStatus handles PATCH /admin/intakes/{id}/status.
func (h *SubmissionHandlers) UpdateIntakeStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingSubmissionID(w, "intake")
		return
	}

	var req statusUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	intake, err := h.Svc.UpdateIntakeStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, intake)
}

// ListBookings handles GET /admin/bookings.
func (h *SubmissionHandlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)
	opts := submissionListOptionsFromQuery(r)
	opts.Limit = limit
	opts.Offset = offset

	bookings, err := h.Svc.ListBookings(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBooking handles GET /admin/bookings/{id}.
func (h *SubmissionHandlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingSubmissionID(w, "booking")
		return
	}

	booking, err := h.Svc.GetBooking(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus handles PATCH /admin/bookings/{id}/status.
func (h *SubmissionHandlers) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingSubmissionID(w, "booking")
		return
	}

	var req statusUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	booking, err := h.Svc.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, booking)
}

func submissionListOptionsFromQuery(r *http.Request) model.SubmissionsListOptions {
	var opts model.SubmissionsListOptions
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.SubmissionStatus(s)
		opts.Status = &status
	}
	return opts
}

func writeMissingSubmissionID(w http.ResponseWriter, kind string) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "invalid_path",
		Err:     errors.New(kind + " id is required"),
	})
}
