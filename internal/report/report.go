package report

import (
	"context"
	"fmt"
	"sync"
)

// Report is one submission's output: lines to show, then what to say.
type Report struct {
	Lines  []string
	Speech string
}

// Display shows text lines in order.
type Display interface {
	Show(line string) error
	ShowError(line string) error
}

// Speaker speaks an acknowledgement and blocks until it is finished.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Reporter shows results and speaks them.
type Reporter struct {
	display Display
	speaker Speaker
}

func New(display Display, speaker Speaker) *Reporter {
	return &Reporter{display: display, speaker: speaker}
}

// Report shows every line, then speaks. A speech failure is shown as one
// more line and returned; the lines already shown stay.
func (r *Reporter) Report(ctx context.Context, rep Report) error {
	for _, line := range rep.Lines {
		if err := r.display.Show(line); err != nil {
			return err
		}
	}

	if rep.Speech == "" || r.speaker == nil {
		return nil
	}
	if err := r.speaker.Speak(ctx, rep.Speech); err != nil {
		_ = r.display.ShowError(SpeechFailure(err))
		return err
	}
	return nil
}

// SpeechFailure is the line shown when speaking fails.
func SpeechFailure(err error) string {
	return fmt.Sprintf("Error in speech synthesis: %v", err)
}

// BufferDisplay collects lines for surfaces that answer in one message.
type BufferDisplay struct {
	mu     sync.Mutex
	lines  []string
	errors []string
}

func (b *BufferDisplay) Show(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	return nil
}

func (b *BufferDisplay) ShowError(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	b.errors = append(b.errors, line)
	return nil
}

func (b *BufferDisplay) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Errors returns only the lines shown through ShowError.
func (b *BufferDisplay) Errors() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.errors...)
}
