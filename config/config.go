// eastercompany/dex-lipi-service/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	ServiceFile = "lipi.json"
	DiscordFile = "discord.json"
	CacheFile   = "cache.json"
)

// DefaultServiceConfig returns the settings written to lipi.json on first run.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Port:          8300,
		DefaultTarget: "Latin",
		MaxUploadMB:   10,
		LineWorkers:   8,
		LineQueue:     64,
		OCR: OCRConfig{
			Engine:            "vlm",
			ServerURL:         "http://localhost:11434/api/chat",
			Model:             "qwen2.5vl:3b",
			MaxTokens:         1024,
			MaxImageDimension: 1792,
			Languages:         []string{"eng", "hin", "ben", "ori", "guj", "pan", "tam", "tel", "kan", "mal"},
			TimeoutSeconds:    120,
		},
		Transliteration: TranslitConfig{
			ServerURL:       "https://aksharamukha-plugin.appspot.com/api/public",
			TimeoutSeconds:  10,
			CacheTTLMinutes: 24 * 60,
		},
		Speech: SpeechConfig{
			Enabled:      true,
			LanguageCode: "en-US",
			FFmpegPath:   "ffmpeg",
		},
	}
}

// DefaultCacheConfig returns the settings written to cache.json on first run.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Local: &ConnectionConfig{Addr: "localhost:6379"}}
}

// Validate checks the values that would otherwise fail late at request time.
func (c *ServiceConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.OCR.Engine {
	case "vlm", "tesseract":
	default:
		return fmt.Errorf("unknown ocr engine %q (want vlm or tesseract)", c.OCR.Engine)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}
	if c.LineWorkers <= 0 {
		return fmt.Errorf("line_workers must be positive")
	}
	if c.OCR.Engine == "vlm" && (c.OCR.ServerURL == "" || c.OCR.Model == "") {
		return fmt.Errorf("ocr.server_url and ocr.model are required for the vlm engine")
	}
	if c.Speech.Enabled {
		if _, err := language.Parse(c.Speech.LanguageCode); err != nil {
			return fmt.Errorf("invalid speech.language_code %q: %w", c.Speech.LanguageCode, err)
		}
	}
	for _, u := range c.Upstreams {
		if u.Name == "" || !strings.HasPrefix(u.Endpoint, "http") {
			return fmt.Errorf("invalid upstream entry %+v", u)
		}
	}
	return nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *ServiceConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// OCRTimeout is OCR.TimeoutSeconds as a duration.
func (c *ServiceConfig) OCRTimeout() time.Duration {
	return time.Duration(c.OCR.TimeoutSeconds) * time.Second
}

// TranslitTimeout is Transliteration.TimeoutSeconds as a duration.
func (c *ServiceConfig) TranslitTimeout() time.Duration {
	return time.Duration(c.Transliteration.TimeoutSeconds) * time.Second
}

// CacheTTL is Transliteration.CacheTTLMinutes as a duration.
func (c *ServiceConfig) CacheTTL() time.Duration {
	return time.Duration(c.Transliteration.CacheTTLMinutes) * time.Minute
}
