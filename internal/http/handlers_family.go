package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/service"
)

// FamilyPortalHandlers serves the family member's view of their linked
// clients and those clients' shifts. Scoping comes from the client ids
// stamped into the session at login; nothing here widens it.
type FamilyPortalHandlers struct {
	Clients *service.ClientService
	Shifts  *service.ShiftService
}

// ListClients handles GET /family/clients.
func (h *FamilyPortalHandlers) ListClients(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	clients, err := h.Clients.ListForFamily(r.Context(), session.ClientIDs)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

// GetClient handles GET /family/clients/{id}. Unlinked clients read as
// missing rather than forbidden so the endpoint leaks nothing about other
// households.
func (h *FamilyPortalHandlers) GetClient(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("client id is required")},
		)
		return
	}

	if !session.CanAccessClient(id) {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("client not found")},
		)
		return
	}

	client, err := h.Clients.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, client)
}

// ListShifts handles GET /family/shifts: shifts for any linked client.
// Caller-supplied client filters are overridden by the session's links.
func (h *FamilyPortalHandlers) ListShifts(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPortalListLimit)
	opts := shiftListOptionsFromQuery(r)
	opts.Limit = limit
	opts.Offset = offset

	shifts, err := h.Shifts.ListForFamily(r.Context(), session.ClientIDs, opts)
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
