package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	json "github.com/goccy/go-json"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepgramTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listen", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/ogg", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "ogg", string(body))

		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"two plus two"}]}]}}`))
	}))
	defer srv.Close()

	c := NewDeepgramClient("secret", "").WithBaseURL(srv.URL)
	text, err := c.Transcribe(context.Background(), Audio{Data: []byte("ogg")})
	require.NoError(t, err)
	assert.Equal(t, "two plus two", text)
}

func TestDeepgramEmptyAndFailure(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`))
	}))
	defer empty.Close()

	_, err := NewDeepgramClient("k", "en").WithBaseURL(empty.URL).
		Transcribe(context.Background(), Audio{Data: []byte("x")})
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer broken.Close()

	_, err = NewDeepgramClient("k", "en").WithBaseURL(broken.URL).
		Transcribe(context.Background(), Audio{Data: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestElevenLabsSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("xi-api-key"))

		var payload struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "The result is 4", payload.Text)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3"))
	}))
	defer srv.Close()

	c := NewElevenLabsClient("key", "voice-1").WithBaseURL(srv.URL)
	assert.Equal(t, "elevenlabs:voice-1", c.Name())

	audio, err := c.Synthesize(context.Background(), "The result is 4")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3"), audio)
}

func TestOpenAITTSName(t *testing.T) {
	assert.Equal(t, "openai:alloy", NewOpenAITTS("k", "", "").Name())
	assert.Equal(t, "openai:nova", NewOpenAITTS("k", "", "nova").Name())
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Five times six"}`))
	}))
	defer srv.Close()

	c := NewWhisperClient("k", srv.URL, "en")
	text, err := c.Transcribe(context.Background(), Audio{Data: []byte("ogg")})
	require.NoError(t, err)
	assert.Equal(t, "Five times six", text)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	cache := NewRedisCacheFromClient(client, WithPrefix("test:"), WithTTL(time.Minute))
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	key := CacheKey("openai:alloy", "The result is 4")
	require.NoError(t, cache.Set(ctx, key, []byte("mp3")))
	assert.True(t, mr.Exists("test:"+key))

	audio, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("mp3"), audio)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("openai:alloy", "The result is 4")
	assert.Equal(t, a, CacheKey("openai:alloy", "The result is 4"))
	assert.NotEqual(t, a, CacheKey("openai:nova", "The result is 4"))
	assert.NotEqual(t, a, CacheKey("openai:alloy", "The result is 5"))
}
