package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramInfra sends failure reports to admin chats through a bot.
type TelegramInfra struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
}

func NewTelegramInfra(bot *tgbotapi.BotAPI, chatIDs []int64) *TelegramInfra {
	return &TelegramInfra{bot: bot, chatIDs: chatIDs}
}

// NewTelegramInfraFromToken logs the bot in with token.
func NewTelegramInfraFromToken(token string, chatIDs []int64) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return NewTelegramInfra(bot, chatIDs), nil
}

func (i *TelegramInfra) Notify(ctx context.Context, source string, err error, details string) error {
	text := fmt.Sprintf(
		"❗ voice_relay error (%s)\n\nError: %v\n\nDetails: %s",
		source,
		err,
		details,
	)

	for _, chatID := range i.chatIDs {
		if _, sendErr := i.bot.Send(tgbotapi.NewMessage(chatID, text)); sendErr != nil {
			log.Printf("[error_notificator] send fail to %d: %v", chatID, sendErr)
			return sendErr
		}
	}

	return nil
}

// NopInfra is used when no admin channel is configured.
type NopInfra struct{}

func (NopInfra) Notify(context.Context, string, error, string) error { return nil }
