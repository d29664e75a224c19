package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/merchant-leads/internal/infra/http/middleware"
	"github.com/xavierca1/merchant-leads/internal/usecase"
)

type EnrichmentHandler struct {
	EnrichUC *usecase.EnrichBusinessUseCase
}

func NewEnrichmentHandler(uc *usecase.EnrichBusinessUseCase) *EnrichmentHandler {
	return &EnrichmentHandler{EnrichUC: uc}
}

type enrichmentRequest struct {
	BusinessName string `json:"business_name"`
	ZipCode      string `json:"zip_code"`
	SessionID    string `json:"session_id"`
}

// Handle (POST /enrichment)
func (h *EnrichmentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req enrichmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidationError, "invalid JSON body", nil)
		return
	}

	result, err := h.EnrichUC.Execute(r.Context(), req.BusinessName, req.ZipCode, req.SessionID)
	if err != nil {
		middleware.RecordEnrichment("failure")
		writeError(w, err)
		return
	}

	middleware.RecordEnrichment("success")
	writeJSON(w, http.StatusOK, result)
}
