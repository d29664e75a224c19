package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/merchant-leads/internal/entity"
	"github.com/xavierca1/merchant-leads/internal/usecase"
)

// ErrorResponse is the body shape every failure returns.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details"`
	Type    string         `json:"type"`
}

var codeStatus = map[string]int{
	usecase.CodeValidationError:       http.StatusBadRequest,
	usecase.CodeIncompleteForm:        http.StatusBadRequest,
	usecase.CodeSessionNotFound:       http.StatusNotFound,
	usecase.CodeNotFound:              http.StatusNotFound,
	usecase.CodeDuplicateEntry:        http.StatusConflict,
	usecase.CodeEnrichmentUnavailable: http.StatusBadGateway,
	usecase.CodeStorageUnavailable:    http.StatusInternalServerError,
	usecase.CodeStorageError:          http.StatusInternalServerError,
	usecase.CodeDatabaseError:         http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, errType, message string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	writeJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
		Type:    errType,
	})
}

// writeError maps an error from the core onto the taxonomy. Anything
// unrecognized becomes a redacted 500 so internal state never leaks.
func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := usecase.AsAppError(err); ok {
		status, known := codeStatus[appErr.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		writeErrorResponse(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}

	if errors.Is(err, entity.ErrSessionNotFound) {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeSessionNotFound, "Session not found or expired", nil)
		return
	}
	if errors.Is(err, entity.ErrStorageUnavailable) {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeStorageUnavailable, "Storage service unavailable", nil)
		return
	}
	if errors.Is(err, entity.ErrDuplicateLead) {
		writeErrorResponse(w, http.StatusConflict, usecase.CodeDuplicateEntry, err.Error(), nil)
		return
	}

	log.Printf("unhandled error: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
}
