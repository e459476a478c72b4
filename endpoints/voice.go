package endpoints

import (
	"log"
	"net/http"
	"time"

	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/google/uuid"
)

// VoiceResponse is the body of a successful POST /voice-transliterate.
type VoiceResponse struct {
	TransliteratedText string `json:"transliterated_text"`
	TargetLanguage     string `json:"target_language"`
}

// VoiceHandler transcribes an uploaded clip and converts the romanized
// transcript to target_language. A failed recognition yields empty text.
func (s *Server) VoiceHandler(w http.ResponseWriter, r *http.Request) {
	utils.IncrementVoiceRequests()
	start := time.Now()

	if s.recognizer == nil {
		writeError(w, http.StatusServiceUnavailable, "speech recognition is not enabled")
		return
	}

	data, status, err := readUpload(w, r, "file", s.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	target := r.FormValue("target_language")
	if target == "" {
		writeError(w, http.StatusBadRequest, "target_language is required")
		return
	}

	requestID := uuid.NewString()
	text, err := s.recognizer.Transcribe(r.Context(), data)
	if err != nil {
		log.Printf("[STT] %s: recognition failed, continuing with empty text: %v", requestID, err)
		text = ""
	}

	out := s.pipeline.Romanized(r.Context(), text, target)
	s.record(utils.RequestEvent{
		ID:        requestID,
		Type:      utils.EventTypeVoiceTranscribed,
		Source:    "speech",
		Target:    target,
		Lines:     1,
		Input:     text,
		Output:    out,
		Duration:  time.Since(start).Milliseconds(),
		Timestamp: time.Now(),
	})

	writeJSON(w, http.StatusOK, VoiceResponse{TransliteratedText: out, TargetLanguage: target})
}
