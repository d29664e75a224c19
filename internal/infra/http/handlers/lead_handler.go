package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/merchant-leads/internal/entity"
	"github.com/xavierca1/merchant-leads/internal/infra/http/middleware"
	"github.com/xavierca1/merchant-leads/internal/usecase"
)

type LeadHandler struct {
	SubmitUC *usecase.SubmitLeadUseCase
	Repo     entity.LeadRepositoryInterface
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase, repo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{SubmitUC: uc, Repo: repo}
}

// HandleCreate (POST /leads) creates a lead from a complete payload.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var form entity.FormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationError, "invalid JSON body", nil)
		return
	}

	lead, err := h.SubmitUC.CreateLead(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated("direct")
	writeJSON(w, http.StatusCreated, lead)
}

// HandleSubmitFromSession (POST /leads/submit/{session_id}) converts a
// completed session into a lead.
func (h *LeadHandler) HandleSubmitFromSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	lead, err := h.SubmitUC.SubmitFromSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated("session")
	writeJSON(w, http.StatusCreated, lead)
}

// HandleGet (GET /leads/{id})
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if lead == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeNotFound, "Lead "+id+" not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleList (GET /leads?offset=&limit=)
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 100)
	if limit > 500 {
		limit = 500
	}

	leads, err := h.Repo.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
