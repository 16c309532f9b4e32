package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	return NewRepo(NewFileStore(filepath.Join(t.TempDir(), "users.json")), zerolog.Nop())
}

func TestGetOrCreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	u, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)

	assert.Equal(t, int64(42), u.TelegramID)
	assert.Equal(t, 0, u.Coins)
	assert.Equal(t, 3, u.Spins)
	assert.Equal(t, int64(0), u.LastSpinTime)
	assert.Nil(t, u.RefBy)
	assert.Empty(t, u.Refs)
	assert.Empty(t, u.DailyRefs)
	assert.Empty(t, u.WeeklyRefs)
	assert.Empty(t, u.TaskPending)
	assert.Empty(t, u.TaskDone)

	// creation persisted immediately
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	u, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	u.Coins = 900
	require.NoError(t, repo.Save(ctx, "42", u))

	again, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 900, again.Coins)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	u, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	u.Coins = 100
	u.Refs = []string{"7"}
	require.NoError(t, repo.Save(ctx, "42", u))

	fresh := models.NewUser(42)
	require.NoError(t, repo.Save(ctx, "42", fresh))

	got, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Coins, "save is a full overwrite, not a merge")
	assert.Empty(t, got.Refs)
}

func TestUpdateSkipsSave(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	err := repo.Update(ctx, "42", func(u *models.User) bool {
		u.Coins = 999
		return false
	})
	require.NoError(t, err)

	u, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Coins, "fn returned false, mutation discarded")
}

func TestUpdatePersists(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	err := repo.Update(ctx, "42", func(u *models.User) bool {
		u.Coins = 250
		return true
	})
	require.NoError(t, err)

	u, err := repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 250, u.Coins)
}
