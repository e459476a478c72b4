package endpoints

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/EasterCompany/dex-lipi-service/pipeline"
	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/stt"
	"github.com/EasterCompany/dex-lipi-service/utils"
)

// RootMessage is returned by GET /.
const RootMessage = "OCR + LINE-WISE TRANSLITERATION API running"

// Processor is satisfied by *pipeline.Pipeline.
type Processor interface {
	Process(ctx context.Context, transcript, target string) pipeline.Result
	Text(ctx context.Context, text, target string) (script.WritingSystem, string)
	TextAs(ctx context.Context, text string, lang script.WritingSystem, target string) string
	Romanized(ctx context.Context, text, target string) string
}

// History records processed requests. *cache.DB satisfies it.
type History interface {
	AddRequest(ctx context.Context, ev utils.RequestEvent) error
	RecentRequests(ctx context.Context, limit int64) ([]utils.RequestEvent, error)
	PublishEvent(ctx context.Context, event interface{}) error
}

// Options are the request limits and defaults of the API.
type Options struct {
	DefaultTarget     string
	MaxUploadBytes    int64
	MaxImageDimension int
	OCRLanguages      []string
}

// Server holds the handlers of the caller-facing API. OCR, speech and
// history are optional; a nil one makes its endpoint answer 503.
type Server struct {
	pipeline   Processor
	ocr        ocr.Engine
	recognizer stt.Recognizer
	history    History
	opts       Options
}

// NewServer wires the API handlers.
func NewServer(p Processor, engine ocr.Engine, recognizer stt.Recognizer, history History, opts Options) *Server {
	if opts.DefaultTarget == "" {
		opts.DefaultTarget = "Latin"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Server{
		pipeline:   p,
		ocr:        engine,
		recognizer: recognizer,
		history:    history,
		opts:       opts,
	}
}

// RegisterRoutes adds the API endpoints to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /ocr", s.OCRHandler)
	mux.HandleFunc("POST /text-transliterate", s.TextHandler)
	mux.HandleFunc("POST /voice-transliterate", s.VoiceHandler)
	mux.HandleFunc("GET /{$}", s.RootHandler)
	mux.HandleFunc("GET /scripts", s.ScriptsHandler)
	mux.HandleFunc("GET /history", s.HistoryHandler)
}

// RootHandler answers the liveness probe.
func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": RootMessage})
}

// ScriptsHandler lists the labels the classifier can return and the
// selectors callers may pass as a target.
func (s *Server) ScriptsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"labels":         script.Labels(),
		"selectors":      script.Selectors(),
		"default_target": s.opts.DefaultTarget,
	})
}

// record stores and publishes a processed request. It never fails the request.
func (s *Server) record(ev utils.RequestEvent) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.history.AddRequest(ctx, ev); err != nil {
		log.Printf("[HTTP] failed to record request %s: %v", ev.ID, err)
	}
	if err := s.history.PublishEvent(ctx, ev); err != nil {
		log.Printf("[HTTP] failed to publish event %s: %v", ev.ID, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
