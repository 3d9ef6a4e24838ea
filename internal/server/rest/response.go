package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeError maps a service error to its status code. Unknown errors are
// logged and answered with an opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *common.ValidationError
		dup *common.DuplicateError
	)

	switch {
	case errors.As(err, &ve):
		writeErrorMessage(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &dup):
		writeErrorMessage(w, http.StatusBadRequest, dup.Error())
	case errors.Is(err, common.ErrorValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeErrorMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		writeErrorMessage(w, http.StatusUnauthorized, common.AuthInvalidMessage)
	case errors.Is(err, common.ErrorForbidden):
		writeErrorMessage(w, http.StatusForbidden, "Not authorized to modify this resource")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.NewValidationError("body", "invalid JSON request body")
	}
	return nil
}
