package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userdesk/internal/common"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(r.Context(), "encode response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorBody{Error: msg})
}

// writeServiceError translates service sentinels into status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeError(w, r, http.StatusUnauthorized, "invalid credentials")
	default:
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
