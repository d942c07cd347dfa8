// Package users stores the directory's user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Repository persists user records. Delete and lookups of unknown ids
// return common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id string) error
}
