package audio

import (
	"bytes"
	"fmt"

	"github.com/pion/webrtc/v3/pkg/media/oggreader"
)

// OpusSampleRate reads the input sample rate from the OpusHead page of an
// Ogg/Opus stream.
func OpusSampleRate(data []byte) (uint32, error) {
	_, header, err := oggreader.NewWith(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("read ogg header: %w", err)
	}
	if header.SampleRate == 0 {
		return 0, fmt.Errorf("ogg header has no sample rate")
	}
	return header.SampleRate, nil
}
