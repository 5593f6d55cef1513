package speech

import (
	"context"
	"fmt"
	"path/filepath"
)

// MockTranscriber is a deterministic stand-in for the real speech backend.
// It never errors and returns a fixed-confidence payload naming the input
// file, which keeps handler and client tests stable while the actual
// recognition call remains unimplemented.
type MockTranscriber struct{}

// NewMockTranscriber creates the stub transcriber.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns the fixed mock payload.
func (m *MockTranscriber) Transcribe(ctx context.Context, path string, languageCode string) (*Transcription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Transcription{
		Transcript:   fmt.Sprintf("[MOCK] Basic transcription for %s", filepath.Base(path)),
		Confidence:   0.85,
		LanguageCode: languageCode,
	}, nil
}

// Name identifies the stub in responses and logs.
func (m *MockTranscriber) Name() string { return "mock" }
