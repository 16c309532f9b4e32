package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trya20205-hub/SpinNRewardsbackend/database"
	"github.com/trya20205-hub/SpinNRewardsbackend/economy"
	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

const testAdminID = int64(99)

// fakeSender records every outbound message instead of hitting Telegram.
type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Text)
	}
	return out
}

func newTestHandler(t *testing.T) (*Handler, *fakeSender) {
	t.Helper()

	store := database.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	repo := database.NewRepo(store, zerolog.Nop())
	drawer := economy.NewDrawer(rand.New(rand.NewSource(11)))

	bot := &fakeSender{}
	h := NewHandler(bot, repo, drawer, testAdminID, zerolog.Nop())
	h.Now = func() int64 { return 1_000_000 }
	return h, bot
}

// cmdUpdate builds an inbound command update the way Telegram delivers it,
// with a bot_command entity covering the leading /command.
func cmdUpdate(fromID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		cmdLen = i
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: &tgbotapi.User{ID: fromID, FirstName: "Tester"},
			Chat: &tgbotapi.Chat{ID: fromID},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: cmdLen},
			},
		},
	}
}

func TestStartCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)

	h.Start(ctx, cmdUpdate(42, "/start"))

	u, err := h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Coins)
	assert.Equal(t, 3, u.Spins)

	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, "Welcome to SpinNRewards")
}

func TestStartWithReferral(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)

	h.Start(ctx, cmdUpdate(42, "/start 7"))

	ref, err := h.Repo.GetOrCreate(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ref.Refs)
	assert.Equal(t, 4, ref.Spins)

	texts := bot.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "You got 1 spin for referring Tester")
	assert.Equal(t, int64(7), bot.sent[0].ChatID)
	assert.Contains(t, texts[1], "Welcome")
}

func TestStartSelfReferralIgnored(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)

	h.Start(ctx, cmdUpdate(42, "/start 42"))

	u, err := h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, u.Refs)
	assert.Equal(t, 3, u.Spins)
	require.Len(t, bot.sent, 1) // only the welcome
}

func TestSpinExhaustionAndCooldown(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)
	upd := cmdUpdate(42, "/spin")

	for i := 0; i < 3; i++ {
		h.Spin(ctx, upd)
	}

	u, err := h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Spins)
	assert.Equal(t, int64(1_000_000), u.LastSpinTime)

	won := 0
	for _, text := range bot.texts() {
		require.Contains(t, text, "You won")
		var reward int
		_, err := fmt.Sscanf(text, "🎯 You won %d coins!", &reward)
		require.NoError(t, err)
		won += reward
	}
	assert.Equal(t, won, u.Coins)

	// fourth spin before the cooldown elapses
	h.Spin(ctx, upd)
	last := bot.sent[len(bot.sent)-1].Text
	assert.Equal(t, "⏳ You can spin again in 10h 0m", last)

	// nothing changed
	u, err = h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, u.Spins)
	assert.Equal(t, won, u.Coins)
}

func TestSpinAfterCooldownRefills(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)
	upd := cmdUpdate(42, "/spin")

	for i := 0; i < 3; i++ {
		h.Spin(ctx, upd)
	}
	h.Now = func() int64 { return 1_000_000 + economy.SpinCooldown }
	h.Spin(ctx, upd)

	last := bot.sent[len(bot.sent)-1].Text
	assert.Contains(t, last, "You won")

	u, err := h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, u.Spins)
}

func TestBalanceReply(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)

	require.NoError(t, h.Repo.Update(ctx, "42", func(u *models.User) bool {
		u.Coins = 1300
		return true
	}))

	h.Balance(ctx, cmdUpdate(42, "/balance"))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "💰 Coins: 1300\n💵 Value: ₹26.00", bot.sent[0].Text)
}

func TestSubmitNotifiesAdminOnce(t *testing.T) {
	ctx := context.Background()
	h, bot := newTestHandler(t)
	upd := cmdUpdate(42, "/submit")

	h.Submit(ctx, upd)
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0].Text, "Task submitted")
	assert.Equal(t, testAdminID, bot.sent[1].ChatID)
	assert.Contains(t, bot.sent[1].Text, "/approvetask 42")

	// resubmission: no new entry, no new ping
	h.Submit(ctx, upd)
	assert.Len(t, bot.sent, 2)

	u, err := h.Repo.GetOrCreate(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, u.TaskPending)
}
