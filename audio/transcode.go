package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// LinearSampleRate is the rate ToLinear16 resamples to.
const LinearSampleRate = 16000

// ToLinear16 converts any audio ffmpeg understands into 16 kHz mono signed
// 16-bit PCM in a WAV container.
func ToLinear16(ctx context.Context, ffmpegPath string, data []byte) ([]byte, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-ac", "1",
		"-ar", fmt.Sprint(LinearSampleRate),
		"-acodec", "pcm_s16le",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg transcode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no audio")
	}
	return stdout.Bytes(), nil
}
