package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLen is Telegram's limit on a single message's text.
const maxMessageLen = 4096

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
	logger  *slog.Logger
}

func NewTelegramBot(token string, chatID int64, reporter Reporter, logger *slog.Logger) (*TelegramBot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &TelegramBot{
		bot:     api,
		handler: NewHandler(reporter),
		chatID:  chatID,
		logger:  logger,
	}, nil
}

// Start registers the command menu and answers commands until ctx is done.
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Authorized on account", "username", t.bot.Self.UserName)
	if _, err := t.bot.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		t.logger.Warn("Failed to register bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg, ok := t.handleUpdate(update)
			if !ok {
				continue
			}
			t.logger.Debug("Answering command", "command", update.Message.Command(), "chat", msg.ChatID)
			t.send(msg)
		}
	}
}

// handleUpdate answers commands from the league chat. With no chat
// configured every chat is answered.
func (t *TelegramBot) handleUpdate(update tgbotapi.Update) (tgbotapi.MessageConfig, bool) {
	if update.Message == nil || !update.Message.IsCommand() {
		return tgbotapi.MessageConfig{}, false
	}
	if t.chatID != 0 && update.Message.Chat != nil && update.Message.Chat.ID != t.chatID {
		t.logger.Warn("Ignoring command from another chat", "chat", update.Message.Chat.ID)
		return tgbotapi.MessageConfig{}, false
	}
	return t.handler.HandleCommand(update), true
}

func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	for _, part := range splitMessage(msg.Text, maxMessageLen) {
		chunk := msg
		chunk.Text = part
		if _, err := t.bot.Send(chunk); err != nil {
			t.logger.Error("Error sending message", "chat", msg.ChatID, "error", err)
			return err
		}
	}
	return nil
}

// SendMessage posts to the league chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		return fmt.Errorf("chat ID not set")
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	return t.send(msg)
}

// splitMessage breaks text into parts of at most limit bytes, cutting at
// blank lines, then line ends, so Markdown spans stay within one part.
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut <= 0 {
			cut = limit
			for cut > 1 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" || len(parts) == 0 {
		parts = append(parts, text)
	}
	return parts
}
