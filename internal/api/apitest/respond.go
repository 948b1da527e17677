package apitest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tcis/pkg/domain"
	dErrors "tcis/pkg/domain-errors"
)

func writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code.
	_ = json.NewEncoder(w).Encode(response)
}

// writeError answers with the backend's {"error": "..."} shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a domain error code to the status the backend would use.
func writeDomainError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeError(w, statusFor(de.Code), de.Error())
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeConflict, dErrors.CodeRoleMismatch:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body or answers 400.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &req, true
}

func userIDParam(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	id, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return 0, false
	}
	return id, true
}
