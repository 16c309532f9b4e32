// main.go
package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/trya20205-hub/SpinNRewardsbackend/config"
	"github.com/trya20205-hub/SpinNRewardsbackend/database"
	"github.com/trya20205-hub/SpinNRewardsbackend/economy"
	"github.com/trya20205-hub/SpinNRewardsbackend/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.Debug)
	ctx := context.Background()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.Close(ctx)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("authorize bot")
	}
	log.Info().Str("account", bot.Self.UserName).Msg("authorized")

	repo := database.NewRepo(store, log)
	drawer := economy.NewDrawer(rand.New(rand.NewSource(time.Now().UnixNano())))
	handler := handlers.NewHandler(bot, repo, drawer, cfg.AdminID, log)

	var updates tgbotapi.UpdatesChannel
	if cfg.WebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.WebhookURL + "/webhook")
		if err != nil {
			log.Fatal().Err(err).Msg("build webhook")
		}
		if _, err := bot.Request(wh); err != nil {
			log.Fatal().Err(err).Msg("set webhook")
		}
		updates = bot.ListenForWebhook("/webhook")
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates = bot.GetUpdatesChan(u)
	}

	// Liveness endpoint for the hosting platform. Shares the default mux
	// with the webhook receiver.
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":  true,
			"msg": "SpinNRewards backend is running",
		})
	})
	go func() {
		if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	for update := range updates {
		handleUpdate(ctx, handler, update, log)
	}
}

// handleUpdate dispatches one inbound command. A panic in a handler fails
// that one interaction only.
func handleUpdate(ctx context.Context, h *handlers.Handler, update tgbotapi.Update, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("handler panicked")
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	switch update.Message.Command() {
	case "start":
		h.Start(ctx, update)
	case "spin":
		h.Spin(ctx, update)
	case "balance":
		h.Balance(ctx, update)
	case "myrefs":
		h.MyRefs(ctx, update)
	case "referralboard":
		h.ReferralBoard(ctx, update)
	case "leaderboard":
		h.Leaderboard(ctx, update)
	case "submit":
		h.Submit(ctx, update)
	case "approvetask":
		h.ApproveTask(ctx, update)
	case "userstats":
		h.UserStats(ctx, update)
	case "setcoins":
		h.SetCoins(ctx, update)
	case "broadcast":
		h.Broadcast(ctx, update)
	default:
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Try /spin or /balance.")
		h.Bot.Send(msg)
	}
}

func newLogger(debug bool) zerolog.Logger {
	if debug {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// openStore picks the storage backend: Mongo, then Postgres, then Redis, then
// the local JSON file fallback.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (database.Store, error) {
	switch {
	case cfg.MongoURI != "":
		log.Info().Msg("using mongodb storage")
		return database.NewMongoStore(ctx, cfg.MongoURI)
	case cfg.DatabaseURL != "":
		log.Info().Msg("using postgres storage")
		return database.NewPostgresStore(ctx, cfg.DatabaseURL)
	case cfg.RedisURL != "":
		log.Info().Msg("using redis storage")
		return database.NewRedisStore(ctx, cfg.RedisURL)
	default:
		log.Info().Str("file", cfg.DataFile).Msg("using local file storage")
		return database.NewFileStore(cfg.DataFile), nil
	}
}
