package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramInfra struct {
	bot         Sender
	adminChatID int64
	app         string
}

func NewTelegramInfra(bot Sender, adminChatID int64, app string) *TelegramInfra {
	return &TelegramInfra{bot: bot, adminChatID: adminChatID, app: app}
}

func (i *TelegramInfra) Notify(_ context.Context, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Ошибка (%s)\n\nОшибка: %v\n\nДетали: %s",
		i.app,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text)); sendErr != nil {
		return fmt.Errorf("notify admin: %w", sendErr)
	}
	return nil
}

// LogInfra is used when no admin chat is configured.
type LogInfra struct {
	log *zap.SugaredLogger
}

func NewLogInfra(log *zap.SugaredLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(_ context.Context, err error, details string) error {
	i.log.Errorw("[notifier] operational failure", "err", err, "details", details)
	return nil
}
