package utils

import "time"

// EventType is a custom type for our event types
type EventType string

// Constants for our event types
const (
	EventTypeOCRCompleted       EventType = "lipi.ocr.completed"
	EventTypeTextTransliterated EventType = "lipi.text.transliterated"
	EventTypeVoiceTranscribed   EventType = "lipi.voice.transcribed"

	// System Events
	EventTypeSystemStatusChange EventType = "system.status.change"
)

// RequestEvent is published on the event stream and kept in the request
// history after every API call.
type RequestEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Target    string    `json:"target_script"`
	Languages []string  `json:"languages,omitempty"`
	Lines     int       `json:"lines"`
	Input     string    `json:"input,omitempty"`
	Output    string    `json:"output,omitempty"`
	Duration  int64     `json:"duration_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusChangeEvent is published when the service starts or stops.
type StatusChangeEvent struct {
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
