package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV wraps 16-bit little endian PCM samples in a WAV container.
func EncodeWAV(samples []int16, sampleRate, channels int) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeWAVHeader(&buf, len(samples), sampleRate, channels); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	return buf.Bytes(), nil
}

// writeWAVHeader writes a PCM WAV header for the given number of samples.
func writeWAVHeader(buf *bytes.Buffer, samples, sampleRate, channels int) error {
	dataSize := samples * 2 // 16-bit samples
	fileSize := 36 + dataSize

	header := make([]byte, 44)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(fileSize))
	copy(header[8:12], "WAVE")

	// fmt chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(header[34:36], 16)

	// data chunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	_, err := buf.Write(header)
	return err
}

// WAVSampleRate returns the sample rate stored in a canonical WAV header.
func WAVSampleRate(data []byte) (uint32, error) {
	if Sniff(data) != FormatWAV || len(data) < 28 {
		return 0, fmt.Errorf("not a wav file")
	}
	return binary.LittleEndian.Uint32(data[24:28]), nil
}
