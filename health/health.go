package health

import (
	"fmt"

	"github.com/EasterCompany/dex-lipi-service/config"
	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/EasterCompany/dex-lipi-service/stt"
)

const (
	StatusOK            = "OK"
	StatusNotConfigured = "Not Configured"
	StatusDisabled      = "Disabled"
)

// Pinger is anything that can report whether its connection is alive.
type Pinger interface {
	Ping() error
}

// GetCacheStatus reports on the Redis connection.
func GetCacheStatus(c Pinger, cfg *config.ConnectionConfig) string {
	if cfg == nil || cfg.Addr == "" {
		return StatusNotConfigured
	}
	if c == nil {
		return "ERROR: Initialization failed"
	}
	if err := c.Ping(); err != nil {
		return fmt.Sprintf("ERROR: %v", err)
	}
	return StatusOK
}

// GetSpeechStatus reports on the speech client. The client has no ping, so
// it counts as OK if it initialized.
func GetSpeechStatus(r stt.Recognizer, cfg config.SpeechConfig) string {
	if !cfg.Enabled {
		return StatusDisabled
	}
	if r == nil {
		return "ERROR: Initialization failed"
	}
	return StatusOK
}

// GetOCRStatus reports which OCR engine is serving requests.
func GetOCRStatus(e ocr.Engine) string {
	if e == nil {
		return "ERROR: Initialization failed"
	}
	return fmt.Sprintf("%s (%s)", StatusOK, e.Name())
}

// Components is the component map reported on /status.
func Components(c Pinger, cacheCfg *config.ConnectionConfig, r stt.Recognizer, speechCfg config.SpeechConfig, e ocr.Engine) map[string]string {
	return map[string]string{
		"cache":  GetCacheStatus(c, cacheCfg),
		"speech": GetSpeechStatus(r, speechCfg),
		"ocr":    GetOCRStatus(e),
	}
}
