package stt

import (
	"context"
	"fmt"
	"log"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/EasterCompany/dex-lipi-service/audio"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Recognizer turns a recorded clip into text.
type Recognizer interface {
	Transcribe(ctx context.Context, clip []byte) (string, error)
}

// recognizeClient is the slice of the speech client STT needs.
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// STT is the speech-to-text client
type STT struct {
	speechClient recognizeClient
	languageCode string
	ffmpegPath   string
	transcode    func(ctx context.Context, ffmpegPath string, data []byte) ([]byte, error)
}

// New creates a new Google Cloud Speech client. An empty credentialsFile
// falls back to Application Default Credentials.
func New(ctx context.Context, languageCode, credentialsFile, ffmpegPath string) (*STT, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	speechClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return newWithClient(speechClient, languageCode, ffmpegPath), nil
}

func newWithClient(c recognizeClient, languageCode, ffmpegPath string) *STT {
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &STT{
		speechClient: c,
		languageCode: languageCode,
		ffmpegPath:   ffmpegPath,
		transcode:    audio.ToLinear16,
	}
}

// Close cleans up the speech client connection.
func (s *STT) Close() {
	if s.speechClient != nil {
		_ = s.speechClient.Close()
	}
}

// Transcribe recognizes a whole clip and returns the best alternative of
// every result, joined by spaces.
func (s *STT) Transcribe(ctx context.Context, clip []byte) (string, error) {
	if len(clip) == 0 {
		return "", fmt.Errorf("empty audio")
	}

	content := clip
	cfg, needsTranscode := recognitionConfig(clip, s.languageCode)
	if needsTranscode {
		pcm, err := s.transcode(ctx, s.ffmpegPath, clip)
		if err != nil {
			return "", err
		}
		content = pcm
	}

	resp, err := s.speechClient.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: content}},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			if t := strings.TrimSpace(result.Alternatives[0].Transcript); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " "), nil
}

// opusRates are the Ogg/Opus sample rates the speech API accepts.
var opusRates = []int32{8000, 12000, 16000, 24000, 48000}

// recognitionConfig picks the request encoding for a clip and reports whether
// it has to go through ffmpeg first.
func recognitionConfig(clip []byte, languageCode string) (*speechpb.RecognitionConfig, bool) {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               languageCode,
		EnableAutomaticPunctuation: true,
	}
	switch audio.Sniff(clip) {
	case audio.FormatOgg:
		rate, err := audio.OpusSampleRate(clip)
		if err != nil {
			log.Printf("[STT] unreadable ogg header, transcoding: %v", err)
			break
		}
		cfg.Encoding = speechpb.RecognitionConfig_OGG_OPUS
		cfg.SampleRateHertz = snapOpusRate(rate)
		return cfg, false
	case audio.FormatWAV, audio.FormatFLAC:
		// The API reads encoding and rate from the header.
		cfg.Encoding = speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
		return cfg, false
	}
	cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
	cfg.SampleRateHertz = audio.LinearSampleRate
	return cfg, true
}

// snapOpusRate returns the smallest accepted rate at or above rate, or the
// largest accepted rate.
func snapOpusRate(rate uint32) int32 {
	for _, r := range opusRates {
		if int64(rate) <= int64(r) {
			return r
		}
	}
	return opusRates[len(opusRates)-1]
}
