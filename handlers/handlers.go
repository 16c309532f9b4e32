// handlers/handlers.go
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/trya20205-hub/SpinNRewardsbackend/database"
	"github.com/trya20205-hub/SpinNRewardsbackend/economy"
	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// Sender is the part of tgbotapi.BotAPI the handlers use. Tests swap in a
// fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Handler struct {
	Bot       Sender
	Repo      *database.Repo
	Drawer    *economy.Drawer
	Referrals *economy.Referrals
	Tasks     *economy.Tasks
	AdminID   int64
	Log       zerolog.Logger

	// Now supplies unix seconds; tests pin it.
	Now func() int64
}

func NewHandler(bot Sender, repo *database.Repo, drawer *economy.Drawer, adminID int64, log zerolog.Logger) *Handler {
	return &Handler{
		Bot:       bot,
		Repo:      repo,
		Drawer:    drawer,
		Referrals: &economy.Referrals{Repo: repo},
		Tasks:     &economy.Tasks{Repo: repo},
		AdminID:   adminID,
		Log:       log,
		Now:       func() int64 { return time.Now().Unix() },
	}
}

// send delivers one message best-effort. Delivery failures are logged and
// swallowed; they never abort the command that triggered them.
func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.Bot.Send(msg); err != nil {
		h.Log.Debug().Err(err).Int64("chat", chatID).Msg("send failed")
	}
}

func userID(update tgbotapi.Update) string {
	return fmt.Sprintf("%d", update.Message.From.ID)
}

// Start registers the user and applies the referral payload of
// /start <refId>, if any. Referral credit flows to the referrer only; the
// bonus-spin notification is best-effort.
func (h *Handler) Start(ctx context.Context, update tgbotapi.Update) {
	uid := userID(update)
	chatID := update.Message.Chat.ID

	if _, err := h.Repo.GetOrCreate(ctx, uid); err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("get or create user")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}

	if ref := strings.TrimSpace(update.Message.CommandArguments()); ref != "" {
		h.applyReferral(ctx, ref, uid, update.Message.From.FirstName)
	}

	h.send(chatID, "🎁 Welcome to SpinNRewards! Use /spin to play and /balance to check coins.")
}

func (h *Handler) applyReferral(ctx context.Context, ref, uid, firstName string) {
	status, err := h.Referrals.Apply(ctx, ref, uid)
	if err != nil {
		h.Log.Warn().Err(err).Str("referrer", ref).Str("referee", uid).Msg("referral failed")
		return
	}
	if status != economy.ReferralAccepted {
		return
	}

	var refID int64
	if _, err := fmt.Sscanf(ref, "%d", &refID); err != nil {
		return
	}
	h.send(refID, fmt.Sprintf("🎉 You got 1 spin for referring %s!", firstName))
}

// Spin plays one spin attempt under the per-user lock.
func (h *Handler) Spin(ctx context.Context, update tgbotapi.Update) {
	uid := userID(update)
	chatID := update.Message.Chat.ID
	now := h.Now()

	var result economy.SpinResult
	err := h.Repo.Update(ctx, uid, func(u *models.User) bool {
		result = economy.AttemptSpin(u, now, h.Drawer)
		return result.Won
	})
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("spin update")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}

	if !result.Won {
		hours, mins := economy.CooldownClock(result.Remaining)
		h.send(chatID, fmt.Sprintf("⏳ You can spin again in %dh %dm", hours, mins))
		return
	}
	h.send(chatID, fmt.Sprintf("🎯 You won %d coins!", result.Reward))
}

// Balance reports the coin balance and its currency value.
func (h *Handler) Balance(ctx context.Context, update tgbotapi.Update) {
	uid := userID(update)
	chatID := update.Message.Chat.ID

	u, err := h.Repo.GetOrCreate(ctx, uid)
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("get user")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	h.send(chatID, fmt.Sprintf("💰 Coins: %d\n💵 Value: ₹%.2f", u.Coins, economy.BalanceValue(u.Coins)))
}

// MyRefs reports the lifetime referral count.
func (h *Handler) MyRefs(ctx context.Context, update tgbotapi.Update) {
	uid := userID(update)
	chatID := update.Message.Chat.ID

	u, err := h.Repo.GetOrCreate(ctx, uid)
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("get user")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	h.send(chatID, fmt.Sprintf("👥 You referred %d users.", len(u.Refs)))
}

// ReferralBoard sends the top 10 referrers.
func (h *Handler) ReferralBoard(ctx context.Context, update tgbotapi.Update) {
	h.board(ctx, update, "🏆 Top Referrers:\n", economy.TopByRefs, "refs")
}

// Leaderboard sends the top 10 coin holders.
func (h *Handler) Leaderboard(ctx context.Context, update tgbotapi.Update) {
	h.board(ctx, update, "🏆 Top Users by Coins:\n", economy.TopByCoins, "coins")
}

func (h *Handler) board(ctx context.Context, update tgbotapi.Update, header string,
	rank func(map[string]*models.User, int) []economy.BoardEntry, unit string) {
	chatID := update.Message.Chat.ID

	users, err := h.Repo.All(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("load users for board")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}

	var b strings.Builder
	b.WriteString(header)
	for i, e := range rank(users, 10) {
		fmt.Fprintf(&b, "%d. %s - %d %s\n", i+1, e.ID, e.Score, unit)
	}
	h.send(chatID, b.String())
}

// Submit marks the user's task pending and pings the admin. Resubmitting
// while pending is a silent no-op: no duplicate entry, no duplicate ping.
func (h *Handler) Submit(ctx context.Context, update tgbotapi.Update) {
	uid := userID(update)
	chatID := update.Message.Chat.ID

	submitted, err := h.Tasks.Submit(ctx, uid)
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("submit task")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	if !submitted {
		return
	}

	h.send(chatID, "✅ Task submitted. Awaiting admin approval.")
	h.send(h.AdminID, fmt.Sprintf("🔔 User %s submitted a task. Approve with /approvetask %s",
		update.Message.From.FirstName, uid))
}
