package speech

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sttStub struct {
	text string
	err  error
}

func (s sttStub) Transcribe(context.Context, Audio) (string, error) { return s.text, s.err }

type ttsStub struct {
	mu    sync.Mutex
	calls int
	audio []byte
	err   error
}

func (t *ttsStub) Name() string { return "stub" }

func (t *ttsStub) Synthesize(context.Context, string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return t.audio, t.err
}

type rulesStub struct{}

func (rulesStub) Process(_ context.Context, text string) (string, error) {
	return strings.ReplaceAll(text, "too", "2"), nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = audio
	return nil
}

type notifierStub struct {
	got []error
}

func (n *notifierStub) Notify(_ context.Context, err error, _ string) error {
	n.got = append(n.got, err)
	return nil
}

type playerStub struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	played  [][]byte
	err     error
}

func (p *playerStub) Play(_ context.Context, audio []byte) error {
	p.mu.Lock()
	p.active++
	if p.active > p.maxSeen {
		p.maxSeen = p.active
	}
	p.played = append(p.played, audio)
	p.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	p.mu.Lock()
	p.active--
	p.mu.Unlock()
	return p.err
}

func voice() Audio { return Audio{Data: []byte("ogg"), Name: "voice.ogg", MIME: "audio/ogg"} }

func TestListen(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("normalizes transcript", func(t *testing.T) {
		svc := NewService(sttStub{text: "  Two Plus Too  "}, nil, log, WithRules(rulesStub{}))
		got, err := svc.Listen(context.Background(), voice())
		require.NoError(t, err)
		assert.Equal(t, "two plus 2", got.Text)
		assert.Equal(t, "  Two Plus Too  ", got.Raw)
	})

	t.Run("empty audio", func(t *testing.T) {
		svc := NewService(sttStub{text: "x"}, nil, log)
		_, err := svc.Listen(context.Background(), Audio{})
		assert.ErrorIs(t, err, ErrNotUnderstood)
	})

	t.Run("no words", func(t *testing.T) {
		svc := NewService(sttStub{err: ErrEmptyTranscript}, nil, log)
		_, err := svc.Listen(context.Background(), voice())
		require.ErrorIs(t, err, ErrNotUnderstood)
		assert.Equal(t, "Sorry, I didn't catch that. Please try again.", err.Error())
	})

	t.Run("blank transcript", func(t *testing.T) {
		svc := NewService(sttStub{text: "   "}, nil, log)
		_, err := svc.Listen(context.Background(), voice())
		assert.ErrorIs(t, err, ErrNotUnderstood)
	})

	t.Run("provider failure", func(t *testing.T) {
		cause := errors.New("503")
		n := &notifierStub{}
		svc := NewService(sttStub{err: cause}, nil, log, WithNotifier(n))
		_, err := svc.Listen(context.Background(), voice())
		require.ErrorIs(t, err, ErrServiceUnavailable)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Sorry, there was an issue with the speech recognition service.", err.Error())
		assert.Len(t, n.got, 1)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewService(nil, nil, log)
		_, err := svc.Listen(context.Background(), voice())
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestSynthesize(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("cache through", func(t *testing.T) {
		tts := &ttsStub{audio: []byte("mp3")}
		cache := &memCache{data: map[string][]byte{}}
		svc := NewService(nil, tts, log, WithCache(cache))

		for i := 0; i < 3; i++ {
			audio, err := svc.Synthesize(context.Background(), "The result is 4")
			require.NoError(t, err)
			assert.Equal(t, []byte("mp3"), audio)
		}
		assert.Equal(t, 1, tts.calls)
		assert.Contains(t, cache.data, CacheKey("stub", "The result is 4"))
	})

	t.Run("disabled is silent", func(t *testing.T) {
		svc := NewService(nil, nil, log)
		audio, err := svc.Synthesize(context.Background(), "hello")
		assert.NoError(t, err)
		assert.Nil(t, audio)
	})

	t.Run("blank text", func(t *testing.T) {
		tts := &ttsStub{audio: []byte("mp3")}
		svc := NewService(nil, tts, log)
		audio, err := svc.Synthesize(context.Background(), "  ")
		assert.NoError(t, err)
		assert.Nil(t, audio)
		assert.Zero(t, tts.calls)
	})

	t.Run("provider failure", func(t *testing.T) {
		tts := &ttsStub{err: errors.New("quota exceeded")}
		svc := NewService(nil, tts, log)
		_, err := svc.Synthesize(context.Background(), "hello")
		require.ErrorIs(t, err, ErrSynthesis)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}

func TestSpeakSerializesPlayback(t *testing.T) {
	tts := &ttsStub{audio: []byte("mp3")}
	player := &playerStub{}
	svc := NewService(nil, tts, zap.NewNop().Sugar(), WithPlayback(NewDevice(), player))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Speak(context.Background(), "The result is 4"))
		}()
	}
	wg.Wait()

	assert.Len(t, player.played, 4)
	assert.Equal(t, 1, player.maxSeen)
}

func TestSpeakPlayerFailure(t *testing.T) {
	tts := &ttsStub{audio: []byte("mp3")}
	player := &playerStub{err: errors.New("no audio device")}
	svc := NewService(nil, tts, zap.NewNop().Sugar(), WithPlayback(NewDevice(), player))

	err := svc.Speak(context.Background(), "hi")
	require.ErrorIs(t, err, ErrSynthesis)
	assert.Contains(t, err.Error(), "no audio device")
}

func TestDeviceAcquireHonoursContext(t *testing.T) {
	d := NewDevice()
	release, err := d.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = d.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release2, err := d.Acquire(context.Background())
	require.NoError(t, err)
	release2()

	var nilDevice *Device
	r, err := nilDevice.Acquire(context.Background())
	require.NoError(t, err)
	r()
}
