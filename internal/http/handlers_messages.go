package httpx

import (
	"errors"
	"net/http"

	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/service"
)

// MessageHandlers serves client message threads for all three portal areas.
// The service layer decides per-role thread access from the session, so the
// same handlers are mounted under /admin, /caregiver, and /family.
type MessageHandlers struct {
	Svc *service.MessageService
}

// List handles GET {area}/messages?client_id=<id>.
func (h *MessageHandlers) List(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("client_id is required"),
		})
		return
	}

	limit, offset := ParseLimitOffset(r, 50, maxPortalListLimit)
	opts := model.MessagesListOptions{
		Limit:    limit,
		Offset:   offset,
		ClientID: clientID,
	}
	if r.URL.Query().Get("unread") == "true" {
		unread := true
		opts.Unread = &unread
	}

	messages, err := h.Svc.ListForClient(r.Context(), *session, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"limit":    limit,
		"offset":   offset,
	})
}

// Post handles POST {area}/messages. Sender role and id come from the
// session, never from the body.
func (h *MessageHandlers) Post(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	var req model.CreateMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	message, err := h.Svc.Post(r.Context(), *session, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, message)
}

// MarkRead handles POST {area}/messages/read?client_id=<id>. Marks the
// thread read from the session role's side.
func (h *MessageHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		writeMissingSession(w)
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("client_id is required"),
		})
		return
	}

	updated, err := h.Svc.MarkRead(r.Context(), *session, clientID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"marked_read": updated})
}
