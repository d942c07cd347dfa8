// Package session holds the console's authentication state and the
// in-memory user collection shared by the directory and the services.
//
// The authentication flag, the current account and the access token are
// persisted through a Store so a restarted console resumes where it left off.
// The user collection lives in memory only.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/logging"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

// Persisted keys.
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyCurrentUser     = "currentUser"
	KeyAccessToken     = "accessToken"
)

// ErrMalformedSession is returned by Restore when persisted state cannot be decoded.
var ErrMalformedSession = errors.New("malformed session")

// Store is the persistence the Holder needs. metadata.Repository satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Holder is safe for concurrent use. Readers receive copies.
type Holder struct {
	store  Store
	logger logging.Logger

	mu            sync.RWMutex
	authenticated bool
	account       *models.Account
	token         string
	users         []models.User
}

func NewHolder(store Store, logger logging.Logger) *Holder {
	return &Holder{store: store, logger: logger.With("module", "session")}
}

// Restore loads the persisted session. The holder becomes authenticated only
// when the flag is "true" and a decodable account is stored. Corrupt data
// yields an error wrapping ErrMalformedSession and leaves the holder signed out.
func (h *Holder) Restore(ctx context.Context) error {
	flag, err := h.store.Get(ctx, KeyIsAuthenticated)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if string(flag) != "true" {
		return nil
	}

	raw, err := h.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if raw == nil {
		h.logger.Warn(ctx, "authenticated flag set without a current user, ignoring")
		return nil
	}

	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return fmt.Errorf("%w: current user: %v", ErrMalformedSession, err)
	}
	if acc.Username == "" {
		return fmt.Errorf("%w: current user has no username", ErrMalformedSession)
	}

	token, err := h.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	h.mu.Lock()
	h.authenticated = true
	h.account = &acc
	h.token = string(token)
	h.mu.Unlock()

	h.logger.Info(ctx, "session restored", "username", acc.Username)
	return nil
}

// Login marks the holder authenticated as account and persists the flag,
// the serialized account and the token. Nothing changes if persisting fails.
func (h *Holder) Login(ctx context.Context, account models.Account, token string) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}

	if err := h.store.SetMany(ctx, map[string][]byte{
		KeyIsAuthenticated: []byte("true"),
		KeyCurrentUser:     raw,
		KeyAccessToken:     []byte(token),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	h.mu.Lock()
	h.authenticated = true
	h.account = &account
	h.token = token
	h.mu.Unlock()
	return nil
}

// Logout signs out in memory, then removes the persisted session keys.
// The user collection is dropped too.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	h.authenticated = false
	h.account = nil
	h.token = ""
	h.users = nil
	h.mu.Unlock()

	if err := h.store.Delete(ctx, KeyIsAuthenticated, KeyCurrentUser, KeyAccessToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (h *Holder) IsAuthenticated() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.authenticated
}

// CurrentUser returns the signed-in account, if any.
func (h *Holder) CurrentUser() (models.Account, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.account == nil {
		return models.Account{}, false
	}
	return *h.account, true
}

func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Users returns a copy of the collection.
func (h *Holder) Users() []models.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.users)
}

// ReplaceUsers swaps in a freshly fetched collection.
func (h *Holder) ReplaceUsers(users []models.User) {
	users = slices.Clone(users)
	h.mu.Lock()
	h.users = users
	h.mu.Unlock()
}

// AddUser appends u to the collection.
func (h *Holder) AddUser(u models.User) {
	h.mu.Lock()
	next := make([]models.User, 0, len(h.users)+1)
	next = append(next, h.users...)
	h.users = append(next, u)
	h.mu.Unlock()
}

// RemoveUser drops every record with the given id and reports whether any was removed.
func (h *Holder) RemoveUser(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]models.User, 0, len(h.users))
	for _, u := range h.users {
		if u.ID != id {
			next = append(next, u)
		}
	}
	removed := len(next) != len(h.users)
	h.users = next
	return removed
}
