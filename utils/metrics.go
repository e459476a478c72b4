package utils

import "sync/atomic"

// Metrics holds counters for service operations
var (
	ocrRequests     int64
	textRequests    int64
	voiceRequests   int64
	linesClassified int64
	conversions     int64
	engineFailures  int64
)

// IncrementOCRRequests atomically increments the OCR request counter
func IncrementOCRRequests() {
	atomic.AddInt64(&ocrRequests, 1)
}

// IncrementTextRequests atomically increments the text request counter
func IncrementTextRequests() {
	atomic.AddInt64(&textRequests, 1)
}

// IncrementVoiceRequests atomically increments the voice request counter
func IncrementVoiceRequests() {
	atomic.AddInt64(&voiceRequests, 1)
}

// AddLinesClassified atomically adds n to the classified lines counter
func AddLinesClassified(n int) {
	atomic.AddInt64(&linesClassified, int64(n))
}

// IncrementConversions counts a successful engine conversion
func IncrementConversions() {
	atomic.AddInt64(&conversions, 1)
}

// IncrementEngineFailures counts an engine call that fell back to the original text
func IncrementEngineFailures() {
	atomic.AddInt64(&engineFailures, 1)
}

// GetMetrics returns the current metrics as a map
func GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"ocr_requests":     atomic.LoadInt64(&ocrRequests),
		"text_requests":    atomic.LoadInt64(&textRequests),
		"voice_requests":   atomic.LoadInt64(&voiceRequests),
		"lines_classified": atomic.LoadInt64(&linesClassified),
		"conversions":      atomic.LoadInt64(&conversions),
		"engine_failures":  atomic.LoadInt64(&engineFailures),
	}
}
