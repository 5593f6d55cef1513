package types

// AudioFileInfo is a read-only snapshot describing one audio file at the time
// of a validation call. It is constructed fresh per call and never mutated.
type AudioFileInfo struct {
	Filename           string         `json:"filename"`
	SizeBytes          int64          `json:"size_bytes"`
	SizeMB             float64        `json:"size_mb"`
	Format             string         `json:"format"` // lower-case extension, e.g. ".wav"
	Encoding           string         `json:"encoding,omitempty"`
	IsSupported        bool           `json:"is_supported"`
	RequiresConversion bool           `json:"requires_conversion"`
	WithinSyncLimit    bool           `json:"max_size_sync"`
	WithinAsyncLimit   bool           `json:"max_size_async"`
	Metadata           *AudioMetadata `json:"metadata,omitempty"`
	Analysis           *AudioAnalysis `json:"analysis,omitempty"`
	DecodeError        string         `json:"decode_error,omitempty"`
}

// AudioMetadata holds tag metadata read from the file, when available.
type AudioMetadata struct {
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
}

// AudioAnalysis holds coarse signal statistics computed by the content
// analyzer. DurationSeconds keeps full precision; use DisplayDuration for
// human-facing output.
type AudioAnalysis struct {
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	TotalSamples    int     `json:"total_samples"`
	RMSEnergy       float64 `json:"rms_energy"`
	MaxAmplitude    float64 `json:"max_amplitude"`
	MinAmplitude    float64 `json:"min_amplitude"`
	LoadMethod      string  `json:"load_method"`
}

// ValidationResult is the outcome of validating one file: a pass/fail flag
// plus a human-readable explanation. It carries no other state.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
