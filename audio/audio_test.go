package audio

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/pion/webrtc/v3/pkg/media/oggwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oggOpus(t *testing.T, rate uint32) []byte {
	var buf bytes.Buffer
	w, err := oggwriter.NewWith(&buf, rate, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	wav, err := EncodeWAV([]int16{0, 1, -1}, 16000, 1)
	require.NoError(t, err)

	cases := map[string]struct {
		data []byte
		want Format
	}{
		"ogg":     {oggOpus(t, 48000), FormatOgg},
		"flac":    {[]byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		"wav":     {wav, FormatWAV},
		"riff":    {[]byte("RIFF\x00\x00\x00\x00AVI "), FormatUnknown},
		"short":   {[]byte("RIFF"), FormatUnknown},
		"empty":   {nil, FormatUnknown},
		"mp3-ish": {[]byte("ID3\x04\x00"), FormatUnknown},
	}
	for name, tc := range cases {
		assert.Equal(t, tc.want, Sniff(tc.data), name)
	}
}

func TestOpusSampleRate(t *testing.T) {
	for _, rate := range []uint32{16000, 48000} {
		got, err := OpusSampleRate(oggOpus(t, rate))
		require.NoError(t, err)
		assert.Equal(t, rate, got)
	}

	_, err := OpusSampleRate([]byte("not ogg at all"))
	assert.Error(t, err)
}

func TestEncodeWAV(t *testing.T) {
	data, err := EncodeWAV([]int16{1, 2, 3, 4}, 22050, 2)
	require.NoError(t, err)
	assert.Len(t, data, 44+8)

	rate, err := WAVSampleRate(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(22050), rate)

	_, err = WAVSampleRate([]byte("fLaC"))
	assert.Error(t, err)
}

func TestToLinear16(t *testing.T) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}

	src, err := EncodeWAV(make([]int16, 44100), 44100, 1)
	require.NoError(t, err)

	out, err := ToLinear16(context.Background(), ffmpeg, src)
	require.NoError(t, err)
	assert.Equal(t, FormatWAV, Sniff(out))

	_, err = ToLinear16(context.Background(), ffmpeg, []byte("garbage"))
	assert.Error(t, err)
}

func TestToLinear16_MissingBinary(t *testing.T) {
	_, err := ToLinear16(context.Background(), "/nonexistent/ffmpeg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg transcode failed")
}
