package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "whisper", cfg.STTProvider)
	assert.Equal(t, "openai", cfg.TTSProvider)
	assert.Equal(t, 24*time.Hour, cfg.TTSCacheTTL)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.False(t, cfg.S3Enabled())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
port: "9000"
tts_provider: elevenlabs
redis_db: 3
s3_endpoint: s3.local
s3_bucket: audio
s3_presign_ttl: 15m
admin_chat_id: 1139929360
`), 0o600))

	cfg, err := load(file, []string{
		"PORT=7000",
		"STT_PROVIDER=Deepgram",
		"RATE_LIMIT_PER_MINUTE=5",
		"UNRELATED=1",
		"S3_INSECURE=true",
	})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "deepgram", cfg.STTProvider)
	assert.Equal(t, "elevenlabs", cfg.TTSProvider)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Equal(t, 15*time.Minute, cfg.S3PresignTTL)
	assert.Equal(t, int64(1139929360), cfg.AdminChatID)
	assert.True(t, cfg.S3Insecure)
	assert.True(t, cfg.S3Enabled())
}

func TestInvalid(t *testing.T) {
	_, err := load("", []string{"TTS_PROVIDER=espeak"})
	assert.ErrorContains(t, err, "TTS_PROVIDER")

	_, err = load("", []string{"REDIS_DB=abc"})
	assert.Error(t, err)

	_, err = load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
