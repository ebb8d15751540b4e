package speech

import "errors"

var (
	// ErrNotUnderstood means the audio produced no usable transcript.
	ErrNotUnderstood = errors.New("Sorry, I didn't catch that. Please try again.")
	// ErrServiceUnavailable means the recognition provider failed.
	ErrServiceUnavailable = errors.New("Sorry, there was an issue with the speech recognition service.")
	// ErrSynthesis wraps every speech-output failure.
	ErrSynthesis = errors.New("speech synthesis failed")
	// ErrEmptyTranscript is returned by STT clients that got no words back.
	ErrEmptyTranscript = errors.New("empty transcript")
	// ErrDisabled is returned by the no-op providers.
	ErrDisabled = errors.New("speech provider not configured")
)

// captureError keeps the user-facing sentence as its text and the provider
// cause reachable through errors.Is / errors.As.
type captureError struct {
	sentence error
	cause    error
}

func (e *captureError) Error() string   { return e.sentence.Error() }
func (e *captureError) Unwrap() []error { return []error{e.sentence, e.cause} }

func captureFailure(sentence, cause error) error {
	if cause == nil {
		return sentence
	}
	return &captureError{sentence: sentence, cause: cause}
}
