package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/dmitrijs2005/userdesk/internal/server/auth"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the configured admin credentials and issues access
// tokens.
type AuthService struct {
	username                    string
	passwordHash                []byte
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
	now                         func() time.Time
}

// NewAuthService hashes the admin password once with bcrypt so the plain
// text is not kept around.
func NewAuthService(cfg *config.Config, logger logging.Logger) (*AuthService, error) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, errors.New("admin username and password must be set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthService{
		username:                    cfg.AdminUsername,
		passwordHash:                hash,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      logger.With("module", "auth"),
		now:                         time.Now,
	}, nil
}

// Login verifies the credentials and returns a token plus the account.
// Any mismatch yields common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		s.logger.Warn(ctx, "login rejected", "username", username)
		return models.LoginResponse{}, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(s.username, models.RoleAdmin, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return models.LoginResponse{}, common.ErrorInternal
	}

	return models.LoginResponse{
		Token: token,
		User: models.Account{
			Username:   s.username,
			Role:       models.RoleAdmin,
			LoggedInAt: s.now().UTC(),
		},
	}, nil
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
