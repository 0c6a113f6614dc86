package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
	"techdigest/internal/render"
)

// Telegram caps messages at 4096 characters.
const telegramMessageLimit = 4096

// TelegramPublisher sends the text rendering of a digest to a chat, split
// into multiple messages when it exceeds the API limit.
type TelegramPublisher struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

var _ ports.Publisher = (*TelegramPublisher)(nil)

// NewTelegramPublisher authorizes the bot with the given token.
func NewTelegramPublisher(token string, chatID int64, logger *slog.Logger) (*TelegramPublisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramPublisher{bot: bot, chatID: chatID, log: logger}, nil
}

func (p *TelegramPublisher) Name() string {
	return "telegram"
}

func (p *TelegramPublisher) Publish(ctx context.Context, digest domain.Digest) error {
	text := render.Text(digest)

	for i, chunk := range splitMessage(text, telegramMessageLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(p.chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := p.bot.Send(msg); err != nil {
			return fmt.Errorf("send message %d: %w", i+1, err)
		}
	}
	if p.log != nil {
		p.log.Info("digest sent to telegram", slog.Int64("chat_id", p.chatID))
	}

	return nil
}

// splitMessage breaks text into chunks of at most limit characters,
// preferring line boundaries so sections stay readable. The limit counts
// runes, as the API does, and hard wraps never split a multi-byte rune.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if currentLen > 0 && currentLen+len(runes)+1 > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += len(runes)
	}
	flush()

	return chunks
}
