package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type speakerStub struct {
	said []string
	err  error
	// shown is the number of lines displayed when Speak was called
	shown   int
	display *BufferDisplay
}

func (s *speakerStub) Speak(_ context.Context, text string) error {
	s.said = append(s.said, text)
	s.shown = len(s.display.Lines())
	return s.err
}

func TestReportShowsThenSpeaks(t *testing.T) {
	display := &BufferDisplay{}
	speaker := &speakerStub{display: display}

	err := New(display, speaker).Report(context.Background(), Report{
		Lines:  []string{"You said: 2 plus 2", "Result: 4"},
		Speech: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"You said: 2 plus 2", "Result: 4"}, display.Lines())
	assert.Equal(t, []string{"4"}, speaker.said)
	assert.Equal(t, 2, speaker.shown)
}

func TestReportSpeechFailureKeepsLines(t *testing.T) {
	display := &BufferDisplay{}
	speaker := &speakerStub{display: display, err: errors.New("no audio device")}

	err := New(display, speaker).Report(context.Background(), Report{
		Lines:  []string{"Result: 4"},
		Speech: "The result is 4",
	})
	require.Error(t, err)
	assert.Equal(t, []string{"Result: 4", "Error in speech synthesis: no audio device"}, display.Lines())
	assert.Equal(t, []string{"Error in speech synthesis: no audio device"}, display.Errors())
}

func TestReportDisplayOnly(t *testing.T) {
	display := &BufferDisplay{}
	speaker := &speakerStub{display: display}

	err := New(display, speaker).Report(context.Background(), Report{
		Lines: []string{"Step 1: Given expression: ∫ x**2 dx", "Final result: ∫ x**2 dx = x**3/3 + C"},
	})
	require.NoError(t, err)
	assert.Empty(t, speaker.said)
	assert.Len(t, display.Lines(), 2)

	require.NoError(t, New(display, nil).Report(context.Background(), Report{Speech: "ignored"}))
}

func TestPlainDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := NewPlainDisplay(&buf)
	require.NoError(t, New(d, nil).Report(context.Background(), Report{
		Lines: []string{"Result: 2**3", "Result: 8"},
	}))
	require.NoError(t, d.ShowError("Error in speech synthesis: x"))
	assert.Equal(t, "Result: 2**3\nResult: 8\nError in speech synthesis: x\n", buf.String())
}

func TestMarkdownLine(t *testing.T) {
	assert.Equal(t, "**Result:** `x**3/3`", markdownLine("Result: x**3/3"))
	assert.Equal(t, "**Error:** `Invalid Syntax`", markdownLine("Error: Invalid Syntax"))
	assert.Equal(t, "`plain`", markdownLine("plain"))
}
