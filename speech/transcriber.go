// Package speech wraps the cloud speech-recognition capability behind a
// small interface so the rest of the application can run against the mock
// implementation until a real backend is integrated.
package speech

import "context"

// Transcription is the raw output of one transcription request.
// Confidence is in [0, 1].
type Transcription struct {
	Transcript   string
	Confidence   float64
	LanguageCode string
}

// Transcriber converts an audio file into text. Implementations must respect
// context cancellation on long-running calls and return deterministic output
// for identical input where possible.
type Transcriber interface {
	Transcribe(ctx context.Context, path string, languageCode string) (*Transcription, error)

	// Name identifies the implementation in logs and API responses.
	Name() string
}
