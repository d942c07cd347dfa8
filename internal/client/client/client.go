package client

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Client is the console's view of the user records API.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	SetToken(token string)
}
