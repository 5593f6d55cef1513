package audio

import (
	"fmt"
	"math"

	"murmur/types"
)

// DecodeError reports that every decode attempt failed. It carries the last
// underlying error for diagnostics. Content analysis is advisory, so callers
// degrade to a result without signal statistics instead of failing hard.
type DecodeError struct {
	Attempts int
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("all %d decode attempts failed: %v", e.Attempts, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Analyzer computes coarse signal statistics using a layered fallback decode
// strategy: native layout first, then forced mono at the native rate, then
// forced mono at a fixed fallback rate.
type Analyzer struct {
	decoder      Decoder
	fallbackRate int
}

// NewAnalyzer creates an analyzer around the given decode capability.
// fallbackRate is the sample rate of the last-resort decode attempt; zero
// selects the default of 22050 Hz.
func NewAnalyzer(decoder Decoder, fallbackRate int) *Analyzer {
	if fallbackRate <= 0 {
		fallbackRate = DefaultFallbackSampleRate
	}
	return &Analyzer{decoder: decoder, fallbackRate: fallbackRate}
}

type decodeAttempt struct {
	opts   DecodeOptions
	method string
}

func (a *Analyzer) attempts() []decodeAttempt {
	return []decodeAttempt{
		{DecodeOptions{}, "native"},
		{DecodeOptions{ForceMono: true}, "mono_native"},
		{DecodeOptions{ForceMono: true, SampleRate: a.fallbackRate}, fmt.Sprintf("mono_%d", a.fallbackRate)},
	}
}

// Analyze decodes the file and computes duration, sample rate, channel count
// and energy statistics. The attempts run in strict order and the first
// success wins; the returned LoadMethod records which one it was.
func (a *Analyzer) Analyze(path string) (*types.AudioAnalysis, error) {
	attempts := a.attempts()

	var lastErr error
	for _, attempt := range attempts {
		sig, err := a.decoder.Decode(path, attempt.opts)
		if err != nil {
			lastErr = err
			continue
		}
		return measure(sig, attempt.method), nil
	}
	return nil, &DecodeError{Attempts: len(attempts), Err: lastErr}
}

// measure computes the analysis statistics over a decoded signal. RMS is
// taken over the full signal with channels averaged first.
func measure(sig *Signal, method string) *types.AudioAnalysis {
	frames := sig.Frames()
	channels := sig.Channels()

	var (
		sumSquares float64
		maxAmp     = math.Inf(-1)
		minAmp     = math.Inf(1)
	)
	for i := 0; i < frames; i++ {
		sample := 0.0
		for ch := 0; ch < channels; ch++ {
			sample += sig.Data[ch][i]
		}
		sample /= float64(channels)

		sumSquares += sample * sample
		if sample > maxAmp {
			maxAmp = sample
		}
		if sample < minAmp {
			minAmp = sample
		}
	}

	rms := 0.0
	if frames > 0 {
		rms = math.Sqrt(sumSquares / float64(frames))
	} else {
		maxAmp, minAmp = 0, 0
	}

	return &types.AudioAnalysis{
		DurationSeconds: float64(frames) / float64(sig.SampleRate),
		SampleRate:      sig.SampleRate,
		Channels:        channels,
		TotalSamples:    frames,
		RMSEnergy:       rms,
		MaxAmplitude:    maxAmp,
		MinAmplitude:    minAmp,
		LoadMethod:      method,
	}
}

// DisplayDuration truncates a duration to 3 decimal places for human-facing
// output. The underlying value keeps full precision.
func DisplayDuration(seconds float64) float64 {
	return math.Trunc(seconds*1000) / 1000
}
