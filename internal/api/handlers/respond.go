package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondServiceError maps an AppError onto the HTTP response: not-found
// and validation failures are client errors, authorization failures 403,
// conflicts 409. The stable error code rides along in the body.
func respondServiceError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var statusCode int
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
	case apperrors.ErrorTypeUnauthorized:
		statusCode = http.StatusForbidden
	case apperrors.ErrorTypeConflict:
		statusCode = http.StatusConflict
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, statusCode, map[string]string{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}
