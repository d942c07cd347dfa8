package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/dmitrijs2005/userdesk/internal/server/auth"
	"github.com/gorilla/mux"
)

// UserService is the directory surface the handlers need.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, n models.NewUser) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService issues and verifies access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)
	Authenticate(token string) (*auth.Claims, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	users       UserService
	auth        AuthService
	logger      logging.Logger
	corsOrigins []string
}

func NewServer(users UserService, auth AuthService, logger logging.Logger, corsOrigins []string) *Server {
	return &Server{users: users, auth: auth, logger: logger.With("module", "http"), corsOrigins: corsOrigins}
}

// Handler returns the routed handler wrapped in CORS and access logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s.cors(s.logRequests(r))
}
