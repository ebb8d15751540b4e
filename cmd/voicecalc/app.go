package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_calc/internal/calc"
	"github.com/Vovarama1992/voice_calc/internal/config"
	"github.com/Vovarama1992/voice_calc/internal/metrics"
	"github.com/Vovarama1992/voice_calc/internal/notifier"
	"github.com/Vovarama1992/voice_calc/internal/speech"
	"github.com/Vovarama1992/voice_calc/internal/storage"
	"github.com/Vovarama1992/voice_calc/internal/textrules"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
	calc    calc.Service
	speech  *speech.Service
	rules   textrules.Repo
	store   storage.Service
	notify  *notifier.Service

	closers []func() error
}

type appOptions struct {
	// playback opens the audio device for Speak
	playback bool
	// notifyInfra overrides the zap notifier (Telegram admin chat)
	notifyInfra notifier.Notificator
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildApp(ctx context.Context, cfg config.Config, base *zap.Logger, opts appOptions) (*app, error) {
	log := base.Sugar()
	a := &app{cfg: cfg, log: log, metrics: metrics.New()}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	infra := opts.notifyInfra
	if infra == nil {
		infra = notifier.NewLogInfra(log)
	}
	a.notify = notifier.NewService(infra, log)

	// =========================================================================
	// TRANSCRIPT RULES
	// =========================================================================

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping failed: %w", err)
		}
		if err := textrules.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.rules = textrules.NewPostgresRepo(db)
	} else {
		log.Infow("[app] DATABASE_URL not set, transcript rules kept in memory")
		a.rules = textrules.NewMemoryRepo(textrules.DefaultWordRules()...)
	}

	// =========================================================================
	// SPEECH
	// =========================================================================

	speechOpts := []speech.Option{
		speech.WithRules(textrules.NewService(a.rules)),
		speech.WithNotifier(a.notify),
		speech.WithObserver(a.metrics),
	}

	if cfg.RedisAddr != "" {
		cache := speech.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, speech.WithTTL(cfg.TTSCacheTTL))
		if err := cache.Ping(ctx); err != nil {
			log.Warnw("[app] redis unavailable, tts cache disabled", "err", err)
			_ = cache.Close()
		} else {
			a.closers = append(a.closers, cache.Close)
			speechOpts = append(speechOpts, speech.WithCache(cache))
		}
	}

	if opts.playback {
		player, err := speech.NewCommandPlayer(cfg.PlayerCommand, log)
		if err != nil {
			log.Warnw("[app] audio player unavailable, speech output disabled", "err", err)
		} else {
			speechOpts = append(speechOpts, speech.WithPlayback(speech.NewDevice(), player))
		}
	}

	a.speech = speech.NewService(sttClient(cfg), ttsClient(cfg), log, speechOpts...)

	// =========================================================================
	// AUDIO STORAGE
	// =========================================================================

	if cfg.S3Enabled() {
		s3, err := storage.NewS3Store(ctx, storage.Config{
			Endpoint:   cfg.S3Endpoint,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Bucket:     cfg.S3Bucket,
			Region:     cfg.S3Region,
			Insecure:   cfg.S3Insecure,
			PresignTTL: cfg.S3PresignTTL,
		})
		if err != nil {
			log.Warnw("[app] s3 unavailable, audio sent inline", "err", err)
		} else {
			a.store = storage.NewService(s3)
		}
	}

	a.calc = calc.NewService(log, a.metrics)
	return a, nil
}

func sttClient(cfg config.Config) speech.STTClient {
	switch cfg.STTProvider {
	case "whisper":
		if cfg.OpenAIKey != "" {
			return speech.NewWhisperClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.SpeechLanguage)
		}
	case "deepgram":
		if cfg.DeepgramKey != "" {
			return speech.NewDeepgramClient(cfg.DeepgramKey, cfg.SpeechLanguage)
		}
	}
	return nil
}

func ttsClient(cfg config.Config) speech.TTSClient {
	switch cfg.TTSProvider {
	case "openai":
		if cfg.OpenAIKey != "" {
			return speech.NewOpenAITTS(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIVoice)
		}
	case "elevenlabs":
		if cfg.ElevenLabsKey != "" {
			return speech.NewElevenLabsClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID)
		}
	}
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warnw("[app] close failed", "err", err)
		}
	}
}
