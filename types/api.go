package types

// TranscriptionResult is the payload returned by the transcribe endpoint and
// the speech client. Confidence is in [0, 1].
type TranscriptionResult struct {
	RequestID    string         `json:"request_id"`
	Transcript   string         `json:"transcript"`
	Confidence   float64        `json:"confidence"`
	LanguageCode string         `json:"language_code"`
	Method       string         `json:"processing_method"` // transcriber name, e.g. "mock"
	AudioInfo    *AudioFileInfo `json:"audio_info,omitempty"`
}

// FormatInfo describes one recognized upload format for the formats endpoint.
type FormatInfo struct {
	Extension          string `json:"extension"`
	Encoding           string `json:"encoding"`
	RequiresConversion bool   `json:"requires_conversion"`
}
