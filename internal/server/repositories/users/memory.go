package users

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// MemoryRepository keeps records in insertion order. It backs the server
// when no database is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryRepository(seed ...models.User) *MemoryRepository {
	return &MemoryRepository{users: slices.Clone(seed)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return models.User{}, fmt.Errorf("%w: email %q", common.ErrorAlreadyExists, user.Email)
		}
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return common.ErrorNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}
