package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client and records call arguments.
type fakeClient struct {
	CloseErr error
	PingErr  error

	LoginRet models.LoginResponse
	LoginErr error

	ListRet []models.User
	ListErr error

	CreateRet models.User
	CreateErr error

	DeleteErr error

	LastLoginUser     string
	LastLoginPassword string
	LastCreate        models.NewUser
	DeleteCalls       []string
	ListCalls         int
	Token             string
}

func (f *fakeClient) Close() error                   { return f.CloseErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }
func (f *fakeClient) SetToken(token string)          { f.Token = token }

func (f *fakeClient) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	f.ListCalls++
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateUser(ctx context.Context, u models.NewUser) (models.User, error) {
	f.LastCreate = u
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, id string) error {
	f.DeleteCalls = append(f.DeleteCalls, id)
	return f.DeleteErr
}

var _ client.Client = (*fakeClient)(nil)

func newRepo(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}
