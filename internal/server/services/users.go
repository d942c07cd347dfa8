// Package services contains the reference server's business logic: the
// user directory and admin login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService lists, creates and deletes directory records.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

// NewUserService builds a UserService. db may be nil for managers that
// ignore the handle.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "users"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users failed", "error", err)
		return nil, common.ErrorInternal
	}
	return users, nil
}

// Create validates n, assigns an id and the registration time, and stores
// the record. Invalid input wraps common.ErrorValidation.
func (s *UserService) Create(ctx context.Context, n models.NewUser) (models.User, error) {
	n = n.Normalize()
	if err := n.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	u := models.User{
		ID:    s.newID(),
		Name:  n.Name,
		Email: n.Email,
		Role:  n.Role,
		// PostgreSQL keeps microseconds.
		RegisteredAt: s.now().UTC().Truncate(time.Microsecond),
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, u)
	if err != nil {
		return models.User{}, s.mapRepoError(ctx, "create user failed", err)
	}
	s.logger.Info(ctx, "user created", "id", created.ID)
	return created, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		return s.mapRepoError(ctx, "delete user failed", err)
	}
	s.logger.Info(ctx, "user deleted", "id", id)
	return nil
}

// mapRepoError passes through the sentinels handlers translate into status
// codes and hides everything else behind common.ErrorInternal.
func (s *UserService) mapRepoError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
