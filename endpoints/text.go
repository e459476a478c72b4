package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/google/uuid"
)

// TextRequest is the body of POST /text-transliterate. Language skips
// detection when set.
type TextRequest struct {
	Text         string `json:"text"`
	TargetScript string `json:"target_script"`
	Language     string `json:"language,omitempty"`
}

// TextResponse is the body of a successful POST /text-transliterate.
type TextResponse struct {
	Language       script.WritingSystem `json:"language"`
	Transliterated string               `json:"transliterated"`
}

// TextHandler classifies a piece of text as a whole and converts it.
func (s *Server) TextHandler(w http.ResponseWriter, r *http.Request) {
	utils.IncrementTextRequests()
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.TargetScript == "" {
		req.TargetScript = s.opts.DefaultTarget
	}

	var resp TextResponse
	if req.Language != "" {
		lang := script.WritingSystem(req.Language)
		if !lang.Valid() {
			writeError(w, http.StatusBadRequest, "unknown language "+req.Language)
			return
		}
		resp = TextResponse{Language: lang, Transliterated: s.pipeline.TextAs(r.Context(), req.Text, lang, req.TargetScript)}
	} else {
		lang, out := s.pipeline.Text(r.Context(), req.Text, req.TargetScript)
		resp = TextResponse{Language: lang, Transliterated: out}
	}

	s.record(utils.RequestEvent{
		ID:        uuid.NewString(),
		Type:      utils.EventTypeTextTransliterated,
		Source:    "text",
		Target:    req.TargetScript,
		Languages: []string{string(resp.Language)},
		Lines:     1,
		Input:     req.Text,
		Output:    resp.Transliterated,
		Duration:  time.Since(start).Milliseconds(),
		Timestamp: time.Now(),
	})

	writeJSON(w, http.StatusOK, resp)
}
