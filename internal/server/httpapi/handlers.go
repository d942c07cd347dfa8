package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	s.writeJSON(w, r, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.NewUser
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.users.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v and reports a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}
