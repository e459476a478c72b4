package audio

import "bytes"

// Format is a container format recognized from magic bytes.
type Format string

const (
	FormatOgg     Format = "ogg"
	FormatFLAC    Format = "flac"
	FormatWAV     Format = "wav"
	FormatUnknown Format = "unknown"
)

// Sniff identifies an upload by its leading bytes. The file name and the
// client's content type are not trusted.
func Sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOgg
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	default:
		return FormatUnknown
	}
}
