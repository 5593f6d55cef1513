package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"murmur/types"
)

// ErrNotFound is returned when the referenced path does not resolve to an
// existing regular file.
var ErrNotFound = errors.New("audio file not found")

// Validator checks audio files against the speech backend's format and size
// constraints. It is a pure composition of the format table and the tier
// router plus a read-only stat; safe for concurrent use.
type Validator struct {
	formats FormatTable
	limits  Limits
}

// NewValidator creates a validator over the given format table and size
// limits.
func NewValidator(formats FormatTable, limits Limits) *Validator {
	return &Validator{formats: formats, limits: limits}
}

// NewDefaultValidator creates a validator with the backend's documented
// formats and limits.
func NewDefaultValidator() *Validator {
	return NewValidator(DefaultFormats(), DefaultLimits())
}

// Formats returns the validator's format table.
func (v *Validator) Formats() FormatTable { return v.formats }

// Limits returns the validator's size limits.
func (v *Validator) Limits() Limits { return v.limits }

// statInfo builds the snapshot from a single stat call; no file content is
// read here.
func (v *Validator) statInfo(path string) (*types.AudioFileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	encoding, supported := v.formats.Classify(ext)

	info := &types.AudioFileInfo{
		Filename:           filepath.Base(path),
		SizeBytes:          fi.Size(),
		SizeMB:             float64(fi.Size()) / (1024 * 1024),
		Format:             ext,
		IsSupported:        supported,
		RequiresConversion: RequiresConversion(ext),
		WithinSyncLimit:    fi.Size() <= v.limits.SyncCeilingBytes,
		WithinAsyncLimit:   fi.Size() <= v.limits.AsyncCeilingBytes,
	}
	if supported {
		info.Encoding = string(encoding)
	}
	return info, nil
}

// GetInfo returns a fresh snapshot describing the file, with tag metadata
// attached best-effort. Only ErrNotFound is possible as an error.
func (v *Validator) GetInfo(path string) (*types.AudioFileInfo, error) {
	info, err := v.statInfo(path)
	if err != nil {
		return nil, err
	}
	info.Metadata = readMetadata(path)
	return info, nil
}

// Validate runs the full check: existence, format recognition, size tier.
// Messages are deterministic for identical input.
func (v *Validator) Validate(path string) types.ValidationResult {
	info, err := v.statInfo(path)
	if err != nil {
		return types.ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Audio file not found: %s", path),
		}
	}

	if !info.IsSupported {
		return types.ValidationResult{
			Valid: false,
			Message: fmt.Sprintf("Unsupported format %s. Supported: %s",
				info.Format, strings.Join(v.formats.Extensions(), ", ")),
		}
	}

	tier := v.limits.Route(info.SizeBytes)
	if tier == TierRejected {
		return types.ValidationResult{
			Valid: false,
			Message: fmt.Sprintf("File too large (%.1fMB). Maximum: %dMB for asynchronous processing",
				info.SizeMB, v.limits.AsyncCeilingBytes/(1024*1024)),
		}
	}

	message := fmt.Sprintf("Valid %s file (%.1fMB) - %s processing", info.Format, info.SizeMB, tier)
	if info.RequiresConversion {
		message += " (will be converted to MP3)"
	}
	return types.ValidationResult{Valid: true, Message: message}
}

// readMetadata extracts tag metadata from the file. Failures are expected for
// untagged or synthetic files and simply yield no metadata.
func readMetadata(path string) *types.AudioMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}

	track, _ := meta.Track()
	md := &types.AudioMetadata{
		Title:       meta.Title(),
		Artist:      meta.Artist(),
		Album:       meta.Album(),
		TrackNumber: track,
	}
	if md.Title == "" && md.Artist == "" && md.Album == "" && md.TrackNumber == 0 {
		return nil
	}
	return md
}
