package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Ana-sthesia/shroom-game/internal/game"
	"github.com/Ana-sthesia/shroom-game/internal/ledger"
	"github.com/Ana-sthesia/shroom-game/internal/session"
)

const welcomeText = "Welcome to Mushroom Maniac!\n" +
	"Move around and eat as many mushrooms (🍄) as you can while avoiding the raven (🐦)!\n" +
	"Each round lasts 1 minute. When you collect enough mushrooms, you'll level up.\n" +
	"Use the buttons below to move."

const pollTimeout = 25 // seconds of long-poll per getUpdates call

// Bot handles the integration between Telegram and the round registry
type Bot struct {
	client       *Client
	registry     *session.Registry
	ledger       ledger.Ledger
	lastUpdateID int
}

// NewBot initializes the bot against the given registry and ledger
func NewBot(token string, registry *session.Registry, led ledger.Ledger) *Bot {
	return &Bot{
		client:       NewClient(token),
		registry:     registry,
		ledger:       led,
		lastUpdateID: viper.GetInt("tg_last_update_id"),
	}
}

// Run launches the long-polling loop and blocks until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	log.Info().Msg("telegram bot started")
	for {
		updates, err := b.client.GetUpdates(ctx, b.lastUpdateID+1, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("error fetching updates")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID > b.lastUpdateID {
				b.lastUpdateID = update.UpdateID
				// Persist last_update_id so a restart does not replay moves
				viper.Set("tg_last_update_id", b.lastUpdateID)
				_ = viper.WriteConfig() // Ignore error if config file doesn't exist yet
			}

			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	// 1. Ignore non-commands
	if !strings.HasPrefix(msg.Text, "/") {
		return
	}

	// 2. Normalize "/start@SomeBot extra" down to "start"
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}
	command := strings.TrimPrefix(fields[0], "/")
	command, _, _ = strings.Cut(command, "@")

	// 3. Dispatch
	switch command {
	case "start":
		b.startRound(ctx, msg)
	case "leaderboard":
		b.sendLeaderboard(ctx, msg.Chat.ID)
	case "help":
		b.reply(ctx, msg.Chat.ID, welcomeText+"\n\nStart a round with /start. See the best scores with /leaderboard.", nil)
	}
}

func (b *Bot) startRound(ctx context.Context, msg *Message) {
	key := chatKey(msg.Chat.ID)
	board := b.registry.StartRound(key, playerID(msg.From), displayName(msg.From))
	b.reply(ctx, msg.Chat.ID, welcomeText+"\n\n"+board, moveKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, query *CallbackQuery) {
	// Stop the client-side spinner no matter what the move produces
	if err := b.client.AnswerCallbackQuery(ctx, query.ID); err != nil {
		log.Debug().Err(err).Msg("error answering callback query")
	}
	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	res := b.registry.ProcessMove(ctx, chatKey(chatID), game.Direction(query.Data))

	// Keep the arrows only while there is something left to steer
	var markup *InlineKeyboardMarkup
	switch res.Outcome {
	case game.OutcomeBoard, game.OutcomeLevelUp:
		markup = moveKeyboard()
	}

	if err := b.client.EditMessageText(ctx, chatID, query.Message.MessageID, res.Text, markup); err != nil {
		log.Debug().Err(err).Int64("chat", chatID).Msg("error editing board message")
	}
}

func (b *Bot) sendLeaderboard(ctx context.Context, chatID int64) {
	entries, err := b.ledger.Top(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("error loading leaderboard")
		b.reply(ctx, chatID, "The leaderboard is unavailable right now.", nil)
		return
	}
	b.reply(ctx, chatID, ledger.FormatText(entries), nil)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) {
	if err := b.client.SendMessage(ctx, chatID, text, markup); err != nil {
		log.Warn().Err(err).Int64("chat", chatID).Msg("error sending message")
	}
}

// moveKeyboard lays the arrows out like a d-pad: up on top, left and
// right in the middle row, down at the bottom.
func moveKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "Up", CallbackData: "up"}},
			{{Text: "Left", CallbackData: "left"}, {Text: "Right", CallbackData: "right"}},
			{{Text: "Down", CallbackData: "down"}},
		},
	}
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func playerID(u User) string {
	return strconv.FormatInt(u.ID, 10)
}

// displayName picks the friendliest label Telegram gives us.
func displayName(u User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Player"
}
