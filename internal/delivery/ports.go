package delivery

import (
	"context"

	"github.com/Vovarama1992/voice_calc/internal/speech"
)

// Listener turns an uploaded recording into a transcript.
type Listener interface {
	Listen(ctx context.Context, audio speech.Audio) (speech.Transcript, error)
}

// Synthesizer renders an acknowledgement as encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioStore publishes audio and returns a URL to it.
type AudioStore interface {
	SaveAudio(ctx context.Context, owner string, audio []byte, contentType string) (string, error)
}
