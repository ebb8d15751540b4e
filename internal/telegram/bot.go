package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_calc/internal/calc"
)

// runBotLoop: главный цикл получения апдейтов
func (app *BotApp) runBotLoop(ctx context.Context, bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			app.log.Infow("[bot_loop] stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go app.HandleMessage(ctx, bot, update.Message)
		}
	}
}

func (app *BotApp) HandleMessage(ctx context.Context, bot Bot, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Voice != nil {
		app.handleVoice(ctx, bot, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	// =====================================================
	// КНОПКИ / КОМАНДЫ
	// =====================================================
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		app.setSurface(chatID, calc.SurfaceBasic)
		out := tgbotapi.NewMessage(chatID, calc.AboutText+"\n\n"+hint(calc.SurfaceBasic))
		out.ReplyMarkup = BuildMainKeyboard()
		app.send(bot, out)
		return

	case text == aboutButton || (msg.IsCommand() && msg.Command() == "about"):
		app.send(bot, tgbotapi.NewMessage(chatID, calc.AboutTitle+"\n\n"+calc.AboutText))
		return
	}

	if s, ok := surfaceFor(text); ok {
		app.setSurface(chatID, s)
		app.send(bot, tgbotapi.NewMessage(chatID, string(s)+"\n"+hint(s)))
		return
	}

	// =====================================================
	// ВЫЧИСЛЕНИЕ
	// =====================================================
	var out calc.Outcome
	switch app.Surface(chatID) {
	case calc.SurfaceBasic:
		// typed text stands in for what was heard
		out = app.Calc.Basic(ctx, strings.ToLower(text), nil)
	case calc.SurfaceExpression:
		out = app.Calc.Expression(ctx, text)
	case calc.SurfaceIntegration:
		expr, lower, upper := splitIntegral(text)
		out = app.Calc.Integrate(ctx, expr, lower, upper)
	case calc.SurfaceDifferentiate:
		out = app.Calc.Differentiate(ctx, text)
	case calc.SurfaceTrigonometry:
		out = app.Calc.Trigonometry(ctx, text)
	}

	app.reply(ctx, bot, chatID, out)
}

// splitIntegral reads "expr; lower; upper". Missing limits stay blank.
func splitIntegral(text string) (expr, lower, upper string) {
	parts := strings.Split(text, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	expr = parts[0]
	if len(parts) > 1 {
		lower = parts[1]
	}
	if len(parts) > 2 {
		upper = parts[2]
	}
	return expr, lower, upper
}
