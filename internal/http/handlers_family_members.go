package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

// FamilyMemberHandlers provides the admin surface for family member accounts
// and their client links.
type FamilyMemberHandlers struct {
	Svc *service.FamilyService
}

// Create handles POST /admin/family-members.
func (h *FamilyMemberHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFamilyMemberRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	member, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, member)
}

// List handles GET /admin/family-members.
func (h *FamilyMemberHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)

	members, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"family_members": members,
		"limit":          limit,
		"offset":         offset,
	})
}

// GetByID handles GET /admin/family-members/{id}.
func (h *FamilyMemberHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingFamilyMemberID(w)
		return
	}

	member, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, member)
}

// ListClientLinks handles GET /admin/family-members/{id}/clients.
func (h *FamilyMemberHandlers) ListClientLinks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingFamilyMemberID(w)
		return
	}

	clientIDs, err := h.Svc.LinkedClientIDs(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"client_ids": clientIDs})
}

// ReplaceClientLinks handles PUT /admin/family-members/{id}/clients.
// The submitted set replaces the current linkage wholesale so an admin can
// never leave a member half-linked.
func (h *FamilyMemberHandlers) ReplaceClientLinks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingFamilyMemberID(w)
		return
	}

	var req model.UpdateFamilyMemberLinksRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.ReplaceClientLinks(r.Context(), id, req); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"client_ids": req.ClientIDs})
}

// Delete handles DELETE /admin/family-members/{id}.
func (h *FamilyMemberHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeMissingFamilyMemberID(w)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func writeMissingFamilyMemberID(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "invalid_path",
		Err:     errors.New("family member id is required"),
	})
}
