package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/merchant-leads/internal/entity"
	"github.com/xavierca1/merchant-leads/internal/infra/http/middleware"
	"github.com/xavierca1/merchant-leads/internal/usecase"
)

type SessionHandler struct {
	Store entity.SessionStoreInterface
}

func NewSessionHandler(store entity.SessionStoreInterface) *SessionHandler {
	return &SessionHandler{Store: store}
}

type updateSessionRequest struct {
	FormData *entity.FormDataPatch `json:"form_data"`
}

// HandleCreate (POST /sessions)
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session, err := h.Store.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordSessionCreated()
	writeJSON(w, http.StatusCreated, session)
}

// HandleGet (GET /sessions/{id})
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.Store.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleUpdate (PUT /sessions/{id}) merges partial form data into the
// session after per-step validation.
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationError, "invalid JSON body", nil)
		return
	}
	if req.FormData == nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationError, "form_data is required", nil)
		return
	}

	// Validation needs the current completion state for the step guard.
	current, err := h.Store.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	if fieldErrs := usecase.ValidateFormPatch(current.FormData, req.FormData); len(fieldErrs) > 0 {
		invalid := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			invalid = append(invalid, fe.Error())
		}
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationError, "validation failed",
			map[string]any{"invalid_fields": invalid})
		return
	}

	session, err := h.Store.Update(r.Context(), sessionID, req.FormData)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// HandleDelete (DELETE /sessions/{id})
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	deleted, err := h.Store.Delete(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeSessionNotFound, "Session "+sessionID+" not found", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
