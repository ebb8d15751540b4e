package speech

import (
	"bytes"
	"context"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

func newOpenAI(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// ===== Whisper (STT) =====

type WhisperClient struct {
	client   *openai.Client
	language string
}

// NewWhisperClient; baseURL may be empty for the public API.
func NewWhisperClient(apiKey, baseURL, language string) *WhisperClient {
	return &WhisperClient{client: newOpenAI(apiKey, baseURL), language: language}
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio Audio) (string, error) {
	name := audio.Name
	if name == "" {
		name = "voice.ogg"
	}
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   bytes.NewReader(audio.Data),
		Language: c.language,
		// steer recognition towards spoken arithmetic
		Prompt: "two plus three, ten divide four, five x six, two cap eight",
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyTranscript
	}
	return resp.Text, nil
}

// ===== OpenAI TTS =====

type OpenAITTS struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

func NewOpenAITTS(apiKey, baseURL, voice string) *OpenAITTS {
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAITTS{client: newOpenAI(apiKey, baseURL), voice: openai.SpeechVoice(voice)}
}

func (t *OpenAITTS) Name() string { return "openai:" + string(t.voice) }

func (t *OpenAITTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := t.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          t.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	return io.ReadAll(resp)
}
