package audio

import (
	"sort"
	"strings"
)

// Encoding identifies the signal encoding expected by the speech backend.
type Encoding string

const (
	EncodingLinear16 Encoding = "LINEAR16"
	EncodingFLAC     Encoding = "FLAC"
	EncodingMP3      Encoding = "MP3"
	EncodingOggOpus  Encoding = "OGG_OPUS"
)

// FormatTable maps lower-case file extensions (with the leading dot) to
// the encoding the speech backend expects for that container.
type FormatTable map[string]Encoding

// DefaultFormats returns the extension table for the supported upload formats.
// The .m4a/.aac/.wma entries map to MP3 even though no conversion step exists;
// callers only receive an advisory note for those formats.
func DefaultFormats() FormatTable {
	return FormatTable{
		".wav":  EncodingLinear16,
		".flac": EncodingFLAC,
		".mp3":  EncodingMP3,
		".m4a":  EncodingMP3,
		".ogg":  EncodingOggOpus,
		".aac":  EncodingMP3,
		".wma":  EncodingMP3,
	}
}

// conversionRequired lists the extensions whose native codec is not accepted
// by the speech backend as-is.
var conversionRequired = map[string]bool{
	".m4a": true,
	".aac": true,
	".wma": true,
}

// Classify looks up an extension case-insensitively. The second return value
// reports whether the extension is recognized; an unknown extension is a
// normal outcome, not an error.
func (t FormatTable) Classify(ext string) (Encoding, bool) {
	enc, ok := t[strings.ToLower(ext)]
	return enc, ok
}

// RequiresConversion reports whether the extension carries the advisory
// conversion flag. Conversion itself is never performed.
func RequiresConversion(ext string) bool {
	return conversionRequired[strings.ToLower(ext)]
}

// Extensions returns the recognized extensions in sorted order so that
// user-facing messages stay deterministic.
func (t FormatTable) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
