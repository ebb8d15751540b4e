package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	TTSCacheTTL   time.Duration `mapstructure:"TTS_CACHE_TTL"`

	STTProvider       string `mapstructure:"STT_PROVIDER"`
	TTSProvider       string `mapstructure:"TTS_PROVIDER"`
	OpenAIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIVoice       string `mapstructure:"OPENAI_VOICE"`
	DeepgramKey       string `mapstructure:"DEEPGRAM_API_KEY"`
	ElevenLabsKey     string `mapstructure:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `mapstructure:"ELEVENLABS_VOICE_ID"`
	SpeechLanguage    string `mapstructure:"SPEECH_LANGUAGE"`
	PlayerCommand     string `mapstructure:"PLAYER_COMMAND"`

	S3Endpoint   string        `mapstructure:"S3_ENDPOINT"`
	S3AccessKey  string        `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey  string        `mapstructure:"S3_SECRET_KEY"`
	S3Bucket     string        `mapstructure:"S3_BUCKET"`
	S3Region     string        `mapstructure:"S3_REGION"`
	S3Insecure   bool          `mapstructure:"S3_INSECURE"`
	S3PresignTTL time.Duration `mapstructure:"S3_PRESIGN_TTL"`

	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	AdminChatID   int64  `mapstructure:"ADMIN_CHAT_ID"`

	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	AdminToken         string `mapstructure:"ADMIN_TOKEN"`
}

func defaults() map[string]any {
	return map[string]any{
		"PORT":                  "8080",
		"LOG_LEVEL":             "info",
		"REDIS_DB":              0,
		"TTS_CACHE_TTL":         "24h",
		"STT_PROVIDER":          "whisper",
		"TTS_PROVIDER":          "openai",
		"SPEECH_LANGUAGE":       "en",
		"RATE_LIMIT_PER_MINUTE": 60,
		"S3_PRESIGN_TTL":        "0s",
	}
}

// Load reads .env (if present), then CONFIG_FILE (YAML, optional), then the
// environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv("CONFIG_FILE"), os.Environ())
}

func load(file string, environ []string) (Config, error) {
	values := defaults()

	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		var fromFile map[string]any
		if err := yaml.Unmarshal(raw, &fromFile); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		for k, v := range fromFile {
			values[strings.ToUpper(k)] = v
		}
	}

	known := keys()
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !known[k] {
			continue
		}
		values[k] = v
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(values); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.STTProvider = strings.ToLower(cfg.STTProvider)
	cfg.TTSProvider = strings.ToLower(cfg.TTSProvider)
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.STTProvider {
	case "whisper", "deepgram", "none":
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}
	switch c.TTSProvider {
	case "openai", "elevenlabs", "none":
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q", c.TTSProvider)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// S3Enabled reports whether synthesized audio goes to object storage.
func (c Config) S3Enabled() bool { return c.S3Endpoint != "" && c.S3Bucket != "" }

func keys() map[string]bool {
	out := map[string]bool{}
	for _, f := range fieldTags() {
		out[f] = true
	}
	return out
}

func fieldTags() []string {
	var m map[string]any
	_ = mapstructure.Decode(Config{}, &m)
	tags := make([]string, 0, len(m))
	for k := range m {
		tags = append(tags, k)
	}
	return tags
}
