// Package services contains application services for the UserDesk console.
// This file defines the authentication service: online login against the
// API, offline login against locally cached credentials, the liveness probe
// and housekeeping of the local (offline) auth metadata.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/cryptox"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Offline credential keys in the metadata store. They survive Logout.
const (
	keyOfflineUsername = "offline.username"
	keyOfflineRole     = "offline.role"
	keyOfflineSalt     = "offline.salt"
	keyOfflineVerifier = "offline.verifier"
)

// AuthService defines authentication operations for the console.
//
// Contract:
//   - OnlineLogin: authenticate against the server and cache offline credentials.
//   - OfflineLogin: verify credentials against the locally cached verifier.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe locally cached credentials.
type AuthService interface {
	OnlineLogin(ctx context.Context, username string, password []byte) (models.Account, string, error)
	OfflineLogin(ctx context.Context, username string, password []byte) (models.Account, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	repo   metadata.Repository
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and store.
func NewAuthService(client client.Client, repo metadata.Repository) AuthService {
	return &authService{client: client, repo: repo, now: time.Now}
}

// OnlineLogin authenticates against the server and returns the account and
// bearer token. On success the username, role, a fresh salt and the password
// verifier are cached for OfflineLogin.
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) (models.Account, string, error) {
	resp, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return models.Account{}, "", fmt.Errorf("login error: %w", err)
	}

	acc := resp.User
	if acc.Username == "" {
		acc.Username = username
	}
	if acc.LoggedInAt.IsZero() {
		acc.LoggedInAt = a.now()
	}

	if err := a.saveOfflineData(ctx, acc, password); err != nil {
		return models.Account{}, "", fmt.Errorf("offline data saving error: %w", err)
	}
	return acc, resp.Token, nil
}

func (a *authService) saveOfflineData(ctx context.Context, acc models.Account, password []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	verifier := cryptox.MakeVerifier(cryptox.DeriveKey(password, salt))

	return a.repo.SetMany(ctx, map[string][]byte{
		keyOfflineUsername: []byte(acc.Username),
		keyOfflineRole:     []byte(acc.Role),
		keyOfflineSalt:     salt,
		keyOfflineVerifier: verifier,
	})
}

// OfflineLogin checks password against the cached verifier. Missing cache
// yields client.ErrLocalDataNotAvailable, a wrong username or password
// client.ErrUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) (models.Account, error) {
	values, err := a.repo.List(ctx)
	if err != nil {
		return models.Account{}, fmt.Errorf("read offline data: %w", err)
	}

	savedUsername, salt, verifier := values[keyOfflineUsername], values[keyOfflineSalt], values[keyOfflineVerifier]
	if savedUsername == nil || salt == nil || verifier == nil {
		return models.Account{}, client.ErrLocalDataNotAvailable
	}
	if string(savedUsername) != username {
		return models.Account{}, client.ErrUnauthorized
	}
	if !cryptox.CheckPassword(password, salt, verifier) {
		return models.Account{}, client.ErrUnauthorized
	}

	return models.Account{
		Username:   username,
		Role:       string(values[keyOfflineRole]),
		LoggedInAt: a.now(),
	}, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes the cached offline credentials.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return a.repo.Delete(ctx, keyOfflineUsername, keyOfflineRole, keyOfflineSalt, keyOfflineVerifier)
}
