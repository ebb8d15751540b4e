package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Device is the process-wide audio output. It is created once at start-up;
// each playback acquires it and releases it when done, so only one
// utterance plays at a time.
type Device struct {
	slot chan struct{}
}

func NewDevice() *Device {
	return &Device{slot: make(chan struct{}, 1)}
}

// Acquire waits for the device or for ctx. The returned func releases it.
func (d *Device) Acquire(ctx context.Context) (func(), error) {
	if d == nil {
		return func() {}, nil
	}
	select {
	case d.slot <- struct{}{}:
		return func() { <-d.slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CommandPlayer pipes audio into an external player such as
// "ffplay -nodisp -autoexit -loglevel quiet -".
type CommandPlayer struct {
	name string
	args []string
	log  *zap.SugaredLogger
}

// DefaultPlayerCommand is used when PLAYER_COMMAND is empty.
const DefaultPlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet -"

func NewCommandPlayer(command string, log *zap.SugaredLogger) (*CommandPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultPlayerCommand)
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("player %q: %w", fields[0], err)
	}
	return &CommandPlayer{name: fields[0], args: fields[1:], log: log}, nil
}

func (p *CommandPlayer) Play(ctx context.Context, audio []byte) error {
	if d, err := AudioDuration(ctx, audio); err == nil {
		p.log.Debugw("[tts] playing", "duration", d)
	}

	cmd := exec.CommandContext(ctx, p.name, p.args...)
	cmd.Stdin = bytes.NewReader(audio)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// probeTimeout bounds a single ffprobe call.
const probeTimeout = 5 * time.Second
