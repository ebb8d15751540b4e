package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/speech"
)

const maxVoiceBytes = 20 << 20

func (app *BotApp) handleVoice(ctx context.Context, bot Bot, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if app.Surface(chatID) != calc.SurfaceBasic {
		app.send(bot, tgbotapi.NewMessage(chatID,
			"Voice input works in "+string(calc.SurfaceBasic)+". Type your expression here."))
		return
	}

	data, err := app.download(ctx, bot, msg.Voice.FileID)
	if err != nil {
		app.log.Errorw("[voice] download fail", "chat", chatID, "err", err)
		if app.Notify != nil {
			_ = app.Notify.Notify(ctx, err, "telegram voice download")
		}
		out := app.Calc.Basic(ctx, "", speech.ErrServiceUnavailable)
		app.reply(ctx, bot, chatID, out)
		return
	}
	app.log.Infow("[voice] received", "chat", chatID, "size", humanize.Bytes(uint64(len(data))), "duration", msg.Voice.Duration)

	transcript, captureErr := app.Speech.Listen(ctx, speech.Audio{
		Data: data,
		Name: "voice.ogg",
		MIME: msg.Voice.MimeType,
	})
	app.reply(ctx, bot, chatID, app.Calc.Basic(ctx, transcript.Text, captureErr))
}

func (app *BotApp) download(ctx context.Context, bot Bot, fileID string) ([]byte, error) {
	url, err := bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}
