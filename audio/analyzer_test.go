package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDecoder fails a fixed number of decode attempts before producing a
// signal shaped by the requested options.
type scriptedDecoder struct {
	failures   int
	calls      []DecodeOptions
	nativeRate int
	channels   int
	frames     int
}

func (d *scriptedDecoder) Decode(path string, opts DecodeOptions) (*Signal, error) {
	d.calls = append(d.calls, opts)
	if len(d.calls) <= d.failures {
		return nil, errors.New("codec error")
	}

	rate := d.nativeRate
	if opts.SampleRate > 0 {
		rate = opts.SampleRate
	}
	channels := d.channels
	if opts.ForceMono {
		channels = 1
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, d.frames)
		for i := range data[ch] {
			data[ch][i] = 0.5
		}
	}
	return &Signal{Data: data, SampleRate: rate}, nil
}

// TestAnalyzeFirstAttemptSucceeds verifies the native attempt is preferred
func TestAnalyzeFirstAttemptSucceeds(t *testing.T) {
	dec := &scriptedDecoder{nativeRate: 44100, channels: 2, frames: 44100}
	a := NewAnalyzer(dec, 0)

	analysis, err := a.Analyze("stereo.wav")
	require.NoError(t, err)

	assert.Equal(t, "native", analysis.LoadMethod)
	assert.Equal(t, 44100, analysis.SampleRate)
	assert.Equal(t, 2, analysis.Channels)
	assert.Equal(t, 44100, analysis.TotalSamples)
	assert.InDelta(t, 1.0, analysis.DurationSeconds, 1e-9)
	assert.Len(t, dec.calls, 1)
	assert.False(t, dec.calls[0].ForceMono)
	assert.Zero(t, dec.calls[0].SampleRate)
}

// TestAnalyzeSecondAttemptForcesMono verifies the first fallback
func TestAnalyzeSecondAttemptForcesMono(t *testing.T) {
	dec := &scriptedDecoder{failures: 1, nativeRate: 48000, channels: 2, frames: 4800}
	a := NewAnalyzer(dec, 0)

	analysis, err := a.Analyze("awkward.ogg")
	require.NoError(t, err)

	assert.Equal(t, "mono_native", analysis.LoadMethod)
	assert.Equal(t, 48000, analysis.SampleRate)
	assert.Equal(t, 1, analysis.Channels)
	require.Len(t, dec.calls, 2)
	assert.True(t, dec.calls[1].ForceMono)
	assert.Zero(t, dec.calls[1].SampleRate)
}

// TestAnalyzeThirdAttemptUsesFallbackRate verifies the last-resort attempt
func TestAnalyzeThirdAttemptUsesFallbackRate(t *testing.T) {
	dec := &scriptedDecoder{failures: 2, nativeRate: 48000, channels: 2, frames: 22050}
	a := NewAnalyzer(dec, 0)

	analysis, err := a.Analyze("stubborn.mp3")
	require.NoError(t, err)

	assert.Equal(t, "mono_22050", analysis.LoadMethod)
	assert.Equal(t, 22050, analysis.SampleRate)
	assert.Equal(t, 1, analysis.Channels)
	require.Len(t, dec.calls, 3)
	assert.True(t, dec.calls[2].ForceMono)
	assert.Equal(t, 22050, dec.calls[2].SampleRate)
}

// TestAnalyzeAllAttemptsFail verifies the degraded outcome
func TestAnalyzeAllAttemptsFail(t *testing.T) {
	dec := &scriptedDecoder{failures: 3}
	a := NewAnalyzer(dec, 0)

	analysis, err := a.Analyze("broken.flac")
	assert.Nil(t, analysis)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 3, decodeErr.Attempts)
	assert.EqualError(t, decodeErr.Err, "codec error")
	assert.Len(t, dec.calls, 3)
}

// TestAnalyzeCustomFallbackRate verifies the configured rate reaches the
// third attempt and the load method name
func TestAnalyzeCustomFallbackRate(t *testing.T) {
	dec := &scriptedDecoder{failures: 2, nativeRate: 48000, channels: 1, frames: 16000}
	a := NewAnalyzer(dec, 16000)

	analysis, err := a.Analyze("narrow.wav")
	require.NoError(t, err)

	assert.Equal(t, "mono_16000", analysis.LoadMethod)
	assert.Equal(t, 16000, analysis.SampleRate)
	assert.Equal(t, 16000, dec.calls[2].SampleRate)
}

// TestMeasureRMS tests the energy statistics over a known mono signal
func TestMeasureRMS(t *testing.T) {
	sig := &Signal{
		Data:       [][]float64{{0.5, -0.5, 0.5, -0.5}},
		SampleRate: 4,
	}

	analysis := measure(sig, "native")

	assert.InDelta(t, 0.5, analysis.RMSEnergy, 1e-9)
	assert.InDelta(t, 0.5, analysis.MaxAmplitude, 1e-9)
	assert.InDelta(t, -0.5, analysis.MinAmplitude, 1e-9)
	assert.InDelta(t, 1.0, analysis.DurationSeconds, 1e-9)
	assert.Equal(t, 1, analysis.Channels)
	assert.Equal(t, 4, analysis.TotalSamples)
}

// TestMeasureChannelAveraging verifies channels are averaged before RMS
func TestMeasureChannelAveraging(t *testing.T) {
	sig := &Signal{
		Data: [][]float64{
			{1.0, 1.0},
			{0.0, 0.0},
		},
		SampleRate: 2,
	}

	analysis := measure(sig, "native")

	// averaged signal is [0.5, 0.5]
	assert.InDelta(t, 0.5, analysis.RMSEnergy, 1e-9)
	assert.InDelta(t, 0.5, analysis.MaxAmplitude, 1e-9)
	assert.InDelta(t, 0.5, analysis.MinAmplitude, 1e-9)
	assert.Equal(t, 2, analysis.Channels)
}

// TestMeasureSineRMS verifies the RMS of a full-scale sine is 1/sqrt(2)
func TestMeasureSineRMS(t *testing.T) {
	const n = 1000
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}
	sig := &Signal{Data: [][]float64{data}, SampleRate: n}

	analysis := measure(sig, "native")

	assert.InDelta(t, 1/math.Sqrt2, analysis.RMSEnergy, 1e-3)
}

// TestDisplayDuration verifies truncation, not rounding
func TestDisplayDuration(t *testing.T) {
	assert.Equal(t, 1.234, DisplayDuration(1.2349))
	assert.Equal(t, 1.999, DisplayDuration(1.9999))
	assert.Equal(t, 0.0, DisplayDuration(0.0001))
}
