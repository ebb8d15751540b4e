package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/speech"
)

// Bot is the part of *tgbotapi.BotAPI the app uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Speech interface {
	Listen(ctx context.Context, audio speech.Audio) (speech.Transcript, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}

type BotApp struct {
	Calc   calc.Service
	Speech Speech
	Notify Notifier
	log    *zap.SugaredLogger

	mu      sync.Mutex
	surface map[int64]calc.Surface
}

func NewBotApp(calcSvc calc.Service, speechSvc Speech, notify Notifier, log *zap.SugaredLogger) *BotApp {
	return &BotApp{
		Calc:    calcSvc,
		Speech:  speechSvc,
		Notify:  notify,
		log:     log,
		surface: make(map[int64]calc.Surface),
	}
}

// InitBot connects to the Bot API with token.
func InitBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return bot, nil
}

// Start serves updates of bot until ctx is done.
func (app *BotApp) Start(ctx context.Context, bot *tgbotapi.BotAPI) {
	app.log.Infow("[bot_app] ready", "username", bot.Self.UserName)
	go app.runBotLoop(ctx, bot)
}

func (app *BotApp) Surface(chatID int64) calc.Surface {
	app.mu.Lock()
	defer app.mu.Unlock()
	if s, ok := app.surface[chatID]; ok {
		return s
	}
	return calc.SurfaceBasic
}

func (app *BotApp) setSurface(chatID int64, s calc.Surface) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.surface[chatID] = s
}
