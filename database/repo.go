// database/repo.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// Repo wraps a Store with get-or-create and save semantics. Every save is a
// full overwrite of the record: last write wins, no merge. A per-id mutex in
// Update serializes read-modify-write for the same user inside this process;
// updates to different ids stay fully independent.
type Repo struct {
	store Store
	log   zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRepo(store Store, log zerolog.Logger) *Repo {
	return &Repo{
		store: store,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// GetOrCreate returns the record for id, creating and persisting the default
// record on first contact.
func (r *Repo) GetOrCreate(ctx context.Context, id string) (*models.User, error) {
	u, err := r.store.Get(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	uid, _ := strconv.ParseInt(id, 10, 64)
	u = models.NewUser(uid)
	if err := r.store.Put(ctx, id, u); err != nil {
		return nil, fmt.Errorf("create user %s: %w", id, err)
	}
	r.log.Debug().Str("user", id).Msg("created user record")
	return u, nil
}

// Save persists the full record for id, overwriting prior state.
func (r *Repo) Save(ctx context.Context, id string, u *models.User) error {
	return r.store.Put(ctx, id, u)
}

// Update runs get-or-create, applies fn and saves when fn returns true, all
// under the id's mutex. fn must not block on anything but the record.
func (r *Repo) Update(ctx context.Context, id string, fn func(*models.User) bool) error {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	u, err := r.GetOrCreate(ctx, id)
	if err != nil {
		return err
	}
	if !fn(u) {
		return nil
	}
	return r.Save(ctx, id, u)
}

func (r *Repo) All(ctx context.Context) (map[string]*models.User, error) {
	return r.store.All(ctx)
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

func (r *Repo) lockFor(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}
