package speech

import (
	"context"
)

// === Данные ===

// Audio is one recorded utterance.
type Audio struct {
	Data []byte
	// Name is a file name hint for providers that sniff the format ("voice.ogg").
	Name string
	// MIME is the content type, e.g. "audio/ogg".
	MIME string
}

// Transcript is a successful speech-input result.
type Transcript struct {
	// Text is lower-cased, trimmed and passed through the transcript rules.
	Text string
	// Raw is what the provider returned.
	Raw string
}

// === Интерфейсы ===

type STTClient interface {
	Transcribe(ctx context.Context, audio Audio) (string, error)
}

type TTSClient interface {
	// Name identifies provider and voice in cache keys.
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player plays encoded audio and blocks until playback completes.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// TextProcessor rewrites a transcript (see internal/textrules).
type TextProcessor interface {
	Process(ctx context.Context, text string) (string, error)
}

// Cache stores synthesized audio by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, audio []byte) error
}

// Notifier receives operational failures.
type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}

// Observer counts speech attempts; direction is "input" or "output".
type Observer interface {
	Speech(direction string, err error)
}
