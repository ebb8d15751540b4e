package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt      STTClient
	tts      TTSClient
	rules    TextProcessor
	cache    Cache
	device   *Device
	player   Player
	notifier Notifier
	observer Observer
	log      *zap.SugaredLogger
}

type Option func(*Service)

func WithRules(rules TextProcessor) Option { return func(s *Service) { s.rules = rules } }
func WithCache(cache Cache) Option         { return func(s *Service) { s.cache = cache } }
func WithNotifier(n Notifier) Option       { return func(s *Service) { s.notifier = n } }
func WithObserver(o Observer) Option       { return func(s *Service) { s.observer = o } }

// WithPlayback enables Speak on a shared device.
func WithPlayback(device *Device, player Player) Option {
	return func(s *Service) {
		s.device = device
		s.player = player
	}
}

func NewService(stt STTClient, tts TTSClient, log *zap.SugaredLogger, opts ...Option) *Service {
	if stt == nil {
		stt = NoOpSTT{}
	}
	if tts == nil {
		tts = NoOpTTS{}
	}
	s := &Service{
		stt: stt,
		tts: tts,
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listen transcribes audio. Failures come back as ErrNotUnderstood or
// ErrServiceUnavailable, whose text is the sentence shown to the user.
func (s *Service) Listen(ctx context.Context, audio Audio) (Transcript, error) {
	if len(audio.Data) == 0 {
		return Transcript{}, ErrNotUnderstood
	}

	raw, err := s.stt.Transcribe(ctx, audio)
	s.observe("input", err)
	if err != nil {
		if errors.Is(err, ErrEmptyTranscript) {
			return Transcript{}, captureFailure(ErrNotUnderstood, err)
		}
		if errors.Is(err, ErrDisabled) {
			return Transcript{}, captureFailure(ErrServiceUnavailable, err)
		}
		s.log.Errorw("[voice] transcription failed", "size", humanize.Bytes(uint64(len(audio.Data))), "err", err)
		s.notify(ctx, err, "speech recognition")
		return Transcript{}, captureFailure(ErrServiceUnavailable, err)
	}

	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return Transcript{}, ErrNotUnderstood
	}

	if s.rules != nil {
		processed, err := s.rules.Process(ctx, text)
		if err != nil {
			s.log.Warnw("[voice] transcript rules skipped", "err", err)
		} else {
			text = strings.TrimSpace(processed)
		}
	}

	s.log.Infow("[voice] heard", "raw", raw, "text", text)
	return Transcript{Text: text, Raw: raw}, nil
}

// Synthesize returns encoded audio for text, going through the cache when
// one is configured. A disabled provider yields nil audio and no error.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	key := CacheKey(s.tts.Name(), text)
	if s.cache != nil {
		audio, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.log.Warnw("[tts] cache read failed", "err", err)
		case ok:
			return audio, nil
		}
	}

	start := time.Now()
	audio, err := s.tts.Synthesize(ctx, text)
	if errors.Is(err, ErrDisabled) {
		return nil, nil
	}
	s.observe("output", err)
	if err != nil {
		s.notify(ctx, err, "speech synthesis")
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	s.log.Debugw("[tts] synthesized",
		"provider", s.tts.Name(), "size", humanize.Bytes(uint64(len(audio))), "elapsed", time.Since(start))

	if s.cache != nil && len(audio) > 0 {
		if err := s.cache.Set(ctx, key, audio); err != nil {
			s.log.Warnw("[tts] cache write failed", "err", err)
		}
	}
	return audio, nil
}

// Speak synthesizes text and plays it, blocking until playback ends.
func (s *Service) Speak(ctx context.Context, text string) error {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if len(audio) == 0 || s.player == nil {
		return nil
	}

	release, err := s.device.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer release()

	if err := s.player.Play(ctx, audio); err != nil {
		return fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return nil
}

func (s *Service) observe(direction string, err error) {
	if s.observer != nil {
		s.observer.Speech(direction, err)
	}
}

func (s *Service) notify(ctx context.Context, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nerr := s.notifier.Notify(ctx, err, details); nerr != nil {
		s.log.Warnw("[voice] notify failed", "err", nerr)
	}
}
