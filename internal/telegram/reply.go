package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/report"
)

// reply sends the lines first, then the spoken acknowledgement as a voice
// note. A failed voice note is reported in chat and never retracts the lines.
func (app *BotApp) reply(ctx context.Context, bot Bot, chatID int64, out calc.Outcome) {
	if len(out.Lines) == 0 {
		return
	}
	app.send(bot, tgbotapi.NewMessage(chatID, strings.Join(out.Lines, "\n")))

	if out.Speech == "" || app.Speech == nil {
		return
	}

	audio, err := app.Speech.Synthesize(ctx, out.Speech)
	if err != nil {
		app.log.Warnw("[tts] synth fail", "chat", chatID, "err", err)
		app.send(bot, tgbotapi.NewMessage(chatID, report.SpeechFailure(err)))
		return
	}
	if len(audio) == 0 {
		return
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "result.mp3", Bytes: audio})
	if _, err := bot.Send(voice); err != nil {
		app.log.Warnw("[tts] voice send fail", "chat", chatID, "err", err)
		app.send(bot, tgbotapi.NewMessage(chatID, report.SpeechFailure(err)))
	}
}

func (app *BotApp) send(bot Bot, c tgbotapi.Chattable) {
	if _, err := bot.Send(c); err != nil {
		app.log.Warnw("[bot] send fail", "err", err)
	}
}
