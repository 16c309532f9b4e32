// database/store.go
package database

import (
	"context"
	"errors"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// ErrNotFound is returned by Store.Get when no record exists for the id.
var ErrNotFound = errors.New("user not found")

// Store is the key-value storage adapter: full-record get/put keyed by the
// string form of the Telegram id. Implementations exist for MongoDB,
// PostgreSQL (JSONB), Redis and a local JSON file; the repository on top is
// adapter-agnostic.
type Store interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Put(ctx context.Context, id string, user *models.User) error
	All(ctx context.Context) (map[string]*models.User, error)
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}
