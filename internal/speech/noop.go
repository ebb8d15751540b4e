package speech

import "context"

// NoOpSTT is used when no recognition provider is configured.
type NoOpSTT struct{}

func (NoOpSTT) Transcribe(context.Context, Audio) (string, error) { return "", ErrDisabled }

// NoOpTTS is used when no synthesis provider is configured; Speak becomes silent.
type NoOpTTS struct{}

func (NoOpTTS) Name() string                                        { return "noop" }
func (NoOpTTS) Synthesize(context.Context, string) ([]byte, error) { return nil, ErrDisabled }
