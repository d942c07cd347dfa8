package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userdesk/internal/dbx"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// whatever handle it is given. There is nothing to migrate.
type InMemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewInMemoryRepositoryManager(seed ...models.User) RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository(seed...)}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}
