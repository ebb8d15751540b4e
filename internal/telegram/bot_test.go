package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/speech"
)

type botStub struct {
	mu      sync.Mutex
	texts   []string
	voices  int
	fileURL string
}

func (b *botStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		b.texts = append(b.texts, m.Text)
	case tgbotapi.VoiceConfig:
		b.voices++
	}
	return tgbotapi.Message{}, nil
}

func (b *botStub) GetFileDirectURL(string) (string, error) {
	if b.fileURL == "" {
		return "", errors.New("no file")
	}
	return b.fileURL, nil
}

type speechStub struct {
	heard string
	err   error
	said  []string
}

func (s *speechStub) Listen(_ context.Context, audio speech.Audio) (speech.Transcript, error) {
	if len(audio.Data) == 0 {
		return speech.Transcript{}, speech.ErrNotUnderstood
	}
	return speech.Transcript{Text: s.heard}, s.err
}

func (s *speechStub) Synthesize(_ context.Context, text string) ([]byte, error) {
	s.said = append(s.said, text)
	return []byte("mp3"), nil
}

func newApp(sp Speech) *BotApp {
	log := zap.NewNop().Sugar()
	return NewBotApp(calc.NewService(log, nil), sp, nil, log)
}

func textMsg(text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}, Text: text}
}

func TestSurfaceSelectionAndExpression(t *testing.T) {
	sp := &speechStub{}
	app := newApp(sp)
	bot := &botStub{}
	ctx := context.Background()

	assert.Equal(t, calc.SurfaceBasic, app.Surface(7))

	app.HandleMessage(ctx, bot, textMsg(buttonFor(calc.SurfaceExpression)))
	assert.Equal(t, calc.SurfaceExpression, app.Surface(7))

	app.HandleMessage(ctx, bot, textMsg("2 plus 3 x 4"))
	assert.Equal(t, "Result: 14", bot.texts[len(bot.texts)-1])
	assert.Equal(t, []string{"The result is 14"}, sp.said)
	assert.Equal(t, 1, bot.voices)
}

func TestIntegrationInput(t *testing.T) {
	app := newApp(&speechStub{})
	bot := &botStub{}
	ctx := context.Background()

	app.HandleMessage(ctx, bot, textMsg(buttonFor(calc.SurfaceIntegration)))
	app.HandleMessage(ctx, bot, textMsg("x; 0; 1"))
	assert.Equal(t,
		"Step 1: Given expression: ∫ x dx\nFinal result: ∫ x dx from 0 to 1 = 0.500",
		bot.texts[len(bot.texts)-1])
	assert.Zero(t, bot.voices)

	app.HandleMessage(ctx, bot, textMsg("cos(x)"))
	assert.Equal(t,
		"Step 1: Given expression: ∫ cos(x) dx\nFinal result: ∫ cos(x) dx = sin(x) + C",
		bot.texts[len(bot.texts)-1])
}

func TestAbout(t *testing.T) {
	app := newApp(&speechStub{})
	bot := &botStub{}
	app.HandleMessage(context.Background(), bot, textMsg(aboutButton))
	require.Len(t, bot.texts, 1)
	assert.Contains(t, bot.texts[0], calc.AboutText)
}

func TestStartCommand(t *testing.T) {
	app := newApp(&speechStub{})
	bot := &botStub{}
	app.setSurface(7, calc.SurfaceTrigonometry)

	msg := textMsg("/start")
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	app.HandleMessage(context.Background(), bot, msg)

	assert.Equal(t, calc.SurfaceBasic, app.Surface(7))
	require.Len(t, bot.texts, 1)
}

func TestVoiceBasic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OggS"))
	}))
	defer srv.Close()

	sp := &speechStub{heard: "5 x 6"}
	app := newApp(sp)
	bot := &botStub{fileURL: srv.URL}

	msg := textMsg("")
	msg.Voice = &tgbotapi.Voice{FileID: "f1", Duration: 2, MimeType: "audio/ogg"}
	app.HandleMessage(context.Background(), bot, msg)

	require.Len(t, bot.texts, 1)
	assert.Equal(t, "You said: 5 x 6\nResult: 30", bot.texts[0])
	assert.Equal(t, []string{"30"}, sp.said)
	assert.Equal(t, 1, bot.voices)
}

func TestVoiceNotUnderstood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OggS"))
	}))
	defer srv.Close()

	sp := &speechStub{err: speech.ErrNotUnderstood}
	app := newApp(sp)
	bot := &botStub{fileURL: srv.URL}

	msg := textMsg("")
	msg.Voice = &tgbotapi.Voice{FileID: "f1"}
	app.HandleMessage(context.Background(), bot, msg)

	require.Len(t, bot.texts, 1)
	assert.Equal(t, "Sorry, I didn't catch that. Please try again.", bot.texts[0])
}

func TestVoiceDownloadFailure(t *testing.T) {
	app := newApp(&speechStub{})
	bot := &botStub{}

	msg := textMsg("")
	msg.Voice = &tgbotapi.Voice{FileID: "f1"}
	app.HandleMessage(context.Background(), bot, msg)

	require.NotEmpty(t, bot.texts)
	assert.Equal(t, "Sorry, there was an issue with the speech recognition service.", bot.texts[0])
}

func TestVoiceOutsideBasic(t *testing.T) {
	app := newApp(&speechStub{})
	bot := &botStub{}
	app.setSurface(7, calc.SurfaceDifferentiate)

	msg := textMsg("")
	msg.Voice = &tgbotapi.Voice{FileID: "f1"}
	app.HandleMessage(context.Background(), bot, msg)

	require.Len(t, bot.texts, 1)
	assert.Contains(t, bot.texts[0], "Voice input works in Basic Operations")
}

func TestSplitIntegral(t *testing.T) {
	e, lo, hi := splitIntegral(" x**2 ; 0 ;3 ")
	assert.Equal(t, []string{"x**2", "0", "3"}, []string{e, lo, hi})

	e, lo, hi = splitIntegral("sin(x)")
	assert.Equal(t, []string{"sin(x)", "", ""}, []string{e, lo, hi})
}
