package endpoints

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/EasterCompany/dex-lipi-service/pipeline"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/google/uuid"
)

// OCRResponse is the body of a successful POST /ocr.
type OCRResponse struct {
	pipeline.Result
	RequestID string `json:"request_id"`
}

// OCRHandler reads an uploaded image, extracts its text and converts every
// non-English line to target_script.
func (s *Server) OCRHandler(w http.ResponseWriter, r *http.Request) {
	utils.IncrementOCRRequests()
	start := time.Now()

	if s.ocr == nil {
		writeError(w, http.StatusServiceUnavailable, "ocr engine is not available")
		return
	}

	data, status, err := readUpload(w, r, "file", s.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	target := r.FormValue("target_script")
	if target == "" {
		target = s.opts.DefaultTarget
	}

	requestID := uuid.NewString()
	img, err := ocr.Normalize(data, s.opts.MaxImageDimension)
	if err != nil {
		log.Printf("[OCR] %s: %v", requestID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.ocr.Recognize(r.Context(), ocr.Input{
		Image:     img,
		Format:    ocr.ImageFormatPNG,
		Languages: s.opts.OCRLanguages,
	})
	if err != nil {
		log.Printf("[OCR] %s: %s failed: %v", requestID, s.ocr.Name(), err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("ocr failed: %v", err))
		return
	}

	result := s.pipeline.Process(r.Context(), res.Text, target)
	log.Printf("[OCR] %s: %d lines via %s in %s", requestID, len(result.Lines), res.Engine, time.Since(start).Round(time.Millisecond))

	languages := make([]string, len(result.Languages))
	for i, l := range result.Languages {
		languages[i] = string(l)
	}
	s.record(utils.RequestEvent{
		ID:        requestID,
		Type:      utils.EventTypeOCRCompleted,
		Source:    res.Engine,
		Target:    target,
		Languages: languages,
		Lines:     len(result.Lines),
		Input:     result.Extracted,
		Output:    result.Transliterated,
		Duration:  time.Since(start).Milliseconds(),
		Timestamp: time.Now(),
	})

	writeJSON(w, http.StatusOK, OCRResponse{Result: result, RequestID: requestID})
}
