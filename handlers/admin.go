// handlers/admin.go
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trya20205-hub/SpinNRewardsbackend/economy"
	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// IsAdmin checks the caller against the single configured admin id.
func (h *Handler) IsAdmin(telegramID int64) bool {
	return telegramID == h.AdminID
}

// ApproveTask handles /approvetask <user_id>. Silent no-op for non-admins, so
// the command's existence stays unconfirmed.
func (h *Handler) ApproveTask(ctx context.Context, update tgbotapi.Update) {
	if !h.IsAdmin(update.Message.From.ID) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.CommandArguments())
	if len(parts) < 1 {
		h.send(chatID, "Usage: /approvetask <user_id>")
		return
	}
	uid := parts[0]

	status, err := h.Tasks.Approve(ctx, uid)
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("approve task")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	if status != economy.TaskApproved {
		h.send(chatID, "❌ No pending task found for that user.")
		return
	}

	if target, err := strconv.ParseInt(uid, 10, 64); err == nil {
		h.send(target, fmt.Sprintf("✅ Your task has been approved! You earned %d coins.", economy.TaskReward))
	}
	h.send(chatID, "✅ Task approved.")
}

// UserStats handles /userstats.
func (h *Handler) UserStats(ctx context.Context, update tgbotapi.Update) {
	if !h.IsAdmin(update.Message.From.ID) {
		return
	}
	chatID := update.Message.Chat.ID

	total, err := h.Repo.Count(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("count users")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	h.send(chatID, fmt.Sprintf("📊 Total Users: %d", total))
}

// SetCoins handles /setcoins <user_id> <amount>: absolute overwrite of the
// target's balance, never additive.
func (h *Handler) SetCoins(ctx context.Context, update tgbotapi.Update) {
	if !h.IsAdmin(update.Message.From.ID) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.CommandArguments())
	if len(parts) != 2 {
		h.send(chatID, "❌ Usage: /setcoins <user_id> <amount>")
		return
	}
	uid := parts[0]

	amount, err := strconv.Atoi(parts[1])
	if err != nil {
		h.send(chatID, "❌ amount must be a number")
		return
	}

	err = h.Repo.Update(ctx, uid, func(u *models.User) bool {
		u.Coins = amount
		return true
	})
	if err != nil {
		h.Log.Error().Err(err).Str("user", uid).Msg("set coins")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Set %d coins for user %s.", amount, uid))
}

// Broadcast handles /broadcast <text>: attempts delivery to every known user,
// swallowing per-recipient failures (blocked bot, deleted account). The reply
// confirms the attempt, not delivery.
func (h *Handler) Broadcast(ctx context.Context, update tgbotapi.Update) {
	if !h.IsAdmin(update.Message.From.ID) {
		return
	}
	chatID := update.Message.Chat.ID

	text := strings.TrimSpace(update.Message.CommandArguments())
	if text == "" {
		h.send(chatID, "❌ Usage: /broadcast <message>")
		return
	}

	users, err := h.Repo.All(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("load users for broadcast")
		h.send(chatID, "⚠️ Something went wrong. Please try again later.")
		return
	}

	for id := range users {
		target, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		h.send(target, fmt.Sprintf("📢 %s", text))
	}
	h.send(chatID, "📣 Broadcast sent (attempted).")
}
