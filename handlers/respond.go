package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailyQuestAPI/internal/apperr"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError goes through the JSON marshaller so messages embedding
// caller-supplied ids (quotes included) stay well-formed on the wire.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps the service error taxonomy onto HTTP status
// codes. PartialFailure answers 207 with the ids the client needs to retry
// the remaining step. Unclassified failures get a fixed message; the
// services already logged the detail.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var pf *apperr.PartialFailure
	switch {
	case errors.As(err, &pf):
		respondWithJSON(w, http.StatusMultiStatus, map[string]string{
			"error":        pf.Error(),
			"submissionId": pf.SubmissionID,
			"retry":        pf.Remaining,
		})
	case errors.Is(err, apperr.ErrInvalidArgument):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
