// database/file.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// FileStore keeps every user record in one JSON file, mirrored by an
// in-memory map. The whole file is rewritten on each Put. Local fallback for
// running without a database; not meant for more than one process.
type FileStore struct {
	mu    sync.Mutex
	path  string
	users map[string]*models.User
}

// NewFileStore loads path if it exists. An unreadable or corrupt file starts
// the store empty rather than failing the process.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{
		path:  path,
		users: make(map[string]*models.User),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fs
	}
	if err := json.Unmarshal(data, &fs.users); err != nil {
		fs.users = make(map[string]*models.User)
	}
	return fs
}

func (fs *FileStore) Get(ctx context.Context, id string) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	u, ok := fs.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (fs *FileStore) Put(ctx context.Context, id string, user *models.User) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	cp := *user
	fs.users[id] = &cp
	return fs.flush()
}

func (fs *FileStore) All(ctx context.Context) (map[string]*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make(map[string]*models.User, len(fs.users))
	for id, u := range fs.users {
		cp := *u
		out[id] = &cp
	}
	return out, nil
}

func (fs *FileStore) Count(ctx context.Context) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return int64(len(fs.users)), nil
}

func (fs *FileStore) Close(ctx context.Context) error {
	return nil
}

// flush rewrites the backing file; caller holds fs.mu.
func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fs.path, err)
	}
	return nil
}
