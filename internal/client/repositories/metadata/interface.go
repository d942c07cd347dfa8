// Package metadata stores the console's small key/value state (session flag,
// current user, access token, offline credentials) in the local database.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
