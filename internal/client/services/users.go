package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// ConfirmFunc asks the operator whether u should be deleted.
type ConfirmFunc func(u models.User) bool

// UserService keeps the session's user collection in step with the API.
//
// Failed calls are logged and returned; the collection is left untouched and
// nothing is retried.
type UserService interface {
	Fetch(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, u models.NewUser) (models.User, error)
	Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error)
}

type userService struct {
	client client.Client
	holder *session.Holder
	logger logging.Logger
}

func NewUserService(client client.Client, holder *session.Holder, logger logging.Logger) UserService {
	return &userService{client: client, holder: holder, logger: logger.With("module", "users")}
}

// Fetch loads every record and replaces the session collection.
func (s *userService) Fetch(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "fetch users failed", "error", err)
		return nil, err
	}
	s.holder.ReplaceUsers(users)
	s.logger.Debug(ctx, "users fetched", "count", len(users))
	return users, nil
}

// Add validates u, creates it remotely and appends the created record.
func (s *userService) Add(ctx context.Context, u models.NewUser) (models.User, error) {
	u = u.Normalize()
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}

	created, err := s.client.CreateUser(ctx, u)
	if err != nil {
		s.logger.Error(ctx, "create user failed", "email", u.Email, "error", err)
		return models.User{}, err
	}
	s.holder.AddUser(created)
	s.logger.Info(ctx, "user created", "id", created.ID)
	return created, nil
}

// Delete asks confirm and, when approved, issues exactly one delete call.
// It reports whether the record was deleted. A declined prompt makes no call
// and returns (false, nil). An id missing from the collection yields
// client.ErrNotFound without a call.
func (s *userService) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	target, ok := s.find(id)
	if !ok {
		return false, fmt.Errorf("%w: user %q", client.ErrNotFound, id)
	}
	if !confirm(target) {
		return false, nil
	}

	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.logger.Error(ctx, "delete user failed", "id", id, "error", err)
		return false, err
	}
	s.holder.RemoveUser(id)
	s.logger.Info(ctx, "user deleted", "id", id)
	return true, nil
}

func (s *userService) find(id string) (models.User, bool) {
	for _, u := range s.holder.Users() {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
