package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// DecodeOptions parameterize a single decode attempt.
type DecodeOptions struct {
	// SampleRate requests resampling to the given rate. Zero keeps the
	// file's native rate.
	SampleRate int
	// ForceMono down-mixes multi-channel audio by averaging channels.
	ForceMono bool
}

// Signal holds decoded audio, one row per channel, samples normalized to
// [-1, 1].
type Signal struct {
	Data       [][]float64
	SampleRate int
}

// Channels returns the number of channel rows.
func (s *Signal) Channels() int { return len(s.Data) }

// Frames returns the per-channel sample count.
func (s *Signal) Frames() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

// Decoder is the decode capability consumed by the content analyzer.
type Decoder interface {
	Decode(path string, opts DecodeOptions) (*Signal, error)
}

// FileDecoder decodes WAV, FLAC, MP3 and Ogg Vorbis files from disk.
type FileDecoder struct{}

// NewFileDecoder creates a decoder for local audio files.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{}
}

// Decode reads and decodes the file, then applies the requested down-mix and
// resampling. Formats without a wired codec (.m4a, .aac, .wma, Opus-in-Ogg)
// return an error; callers treat decode failure as a degraded result.
func (d *FileDecoder) Decode(path string, opts DecodeOptions) (*Signal, error) {
	var (
		sig *Signal
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		sig, err = decodeWAV(path)
	case ".flac":
		sig, err = decodeFLAC(path)
	case ".mp3":
		sig, err = decodeMP3(path)
	case ".ogg":
		sig, err = decodeOgg(path)
	default:
		return nil, fmt.Errorf("no decoder for %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if opts.ForceMono && sig.Channels() > 1 {
		sig = downmix(sig)
	}
	if opts.SampleRate > 0 && opts.SampleRate != sig.SampleRate {
		sig = resample(sig, opts.SampleRate)
	}
	return sig, nil
}

func decodeWAV(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	scale := float64(int64(1) << (dec.BitDepth - 1))

	return deinterleaveInts(buf.Data, channels, buf.Format.SampleRate, scale), nil
}

func decodeFLAC(path string) (*Signal, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FLAC file: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	rate := int(stream.Info.SampleRate)
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	data := make([][]float64, channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode FLAC frame: %w", err)
		}
		for ch, sub := range frame.Subframes {
			if ch >= channels {
				break
			}
			for _, sample := range sub.Samples {
				data[ch] = append(data[ch], float64(sample)/scale)
			}
		}
	}
	if channels == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}
	return &Signal{Data: data, SampleRate: rate}, nil
}

func decodeMP3(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 data: %w", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	const channels = 2
	frames := len(raw) / (2 * channels)
	if frames == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 2
			sample := int16(binary.LittleEndian.Uint16(raw[off : off+2]))
			data[ch][i] = float64(sample) / 32768.0
		}
	}
	return &Signal{Data: data, SampleRate: dec.SampleRate()}, nil
}

func decodeOgg(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ogg decoder: %w", err)
	}

	var samples []float64
	buf := make([]float32, 16384)
	for {
		n, err := r.Read(buf)
		for _, s := range buf[:n] {
			samples = append(samples, float64(s))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read Ogg data: %w", err)
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}
	return deinterleave(samples, r.Channels(), r.SampleRate()), nil
}

func deinterleaveInts(data []int, channels, rate int, scale float64) *Signal {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = float64(data[i*channels+ch]) / scale
		}
	}
	return &Signal{Data: out, SampleRate: rate}
}

func deinterleave(samples []float64, channels, rate int) *Signal {
	frames := len(samples) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = samples[i*channels+ch]
		}
	}
	return &Signal{Data: out, SampleRate: rate}
}

// downmix averages all channels into a single mono row.
func downmix(sig *Signal) *Signal {
	frames := sig.Frames()
	channels := sig.Channels()
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += sig.Data[ch][i]
		}
		mono[i] = sum / float64(channels)
	}
	return &Signal{Data: [][]float64{mono}, SampleRate: sig.SampleRate}
}

// resample converts every channel to dstRate using linear interpolation.
func resample(sig *Signal, dstRate int) *Signal {
	ratio := float64(sig.SampleRate) / float64(dstRate)
	srcFrames := sig.Frames()
	outFrames := int(float64(srcFrames) / ratio)

	out := make([][]float64, sig.Channels())
	for ch, src := range sig.Data {
		dst := make([]float64, outFrames)
		for i := range dst {
			pos := float64(i) * ratio
			idx := int(pos)
			if idx >= srcFrames-1 {
				dst[i] = src[srcFrames-1]
				continue
			}
			frac := pos - float64(idx)
			dst[i] = src[idx]*(1-frac) + src[idx+1]*frac
		}
		out[ch] = dst
	}
	return &Signal{Data: out, SampleRate: dstRate}
}
