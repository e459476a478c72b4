package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/EasterCompany/dex-lipi-service/cache"
	"github.com/EasterCompany/dex-lipi-service/config"
	"github.com/EasterCompany/dex-lipi-service/endpoints"
	"github.com/EasterCompany/dex-lipi-service/health"
	logger "github.com/EasterCompany/dex-lipi-service/log"
	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/EasterCompany/dex-lipi-service/pipeline"
	"github.com/EasterCompany/dex-lipi-service/services"
	"github.com/EasterCompany/dex-lipi-service/stt"
	"github.com/EasterCompany/dex-lipi-service/system"
	"github.com/EasterCompany/dex-lipi-service/translit"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/EasterCompany/dex-lipi-service/worker"
	"golang.org/x/sync/errgroup"
)

const (
	healthCheckInterval = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// App owns every long-lived component of the service.
type App struct {
	Config        *config.AllConfig
	Cache         *cache.DB
	Pool          *worker.WorkerPool
	Pipeline      *pipeline.Pipeline
	OCR           ocr.Engine
	STT           *stt.STT
	HealthChecker *services.HealthChecker
	Server        *http.Server
}

// NewApp builds the service from its configuration. Optional parts that fail
// to start (cache, speech) are logged and left out.
func NewApp(ctx context.Context, cfg *config.AllConfig) (*App, error) {
	a := &App{Config: cfg}
	svc := cfg.Service

	localCache, err := cache.New(cfg.Cache.Local)
	if err != nil {
		logger.Error("Failed to initialize local cache", err)
	}
	a.Cache = localCache
	var c cache.Cache
	if localCache != nil {
		c = localCache
		logger.SetMirror(cache.NewLogWriter(localCache))
	}

	var engine translit.Engine = translit.NewAksharamukha(svc.Transliteration.ServerURL, svc.TranslitTimeout())
	engine = cache.NewCachedEngine(c, engine, svc.CacheTTL())
	converter := translit.NewConverter(engine)

	a.Pool = worker.New(converter, svc.LineWorkers, svc.LineQueue)
	a.Pipeline = pipeline.New(converter, a.Pool)

	a.OCR, err = ocr.New(svc.OCR.Engine, ocr.Config{
		ServerURL: svc.OCR.ServerURL,
		Model:     svc.OCR.Model,
		MaxTokens: svc.OCR.MaxTokens,
		Timeout:   svc.OCRTimeout(),
		Languages: svc.OCR.Languages,
	})
	if err != nil {
		a.Pool.Stop()
		return nil, fmt.Errorf("failed to initialize ocr engine: %w", err)
	}

	if svc.Speech.Enabled {
		a.STT, err = stt.New(ctx, svc.Speech.LanguageCode, svc.Speech.CredentialsFile, svc.Speech.FFmpegPath)
		if err != nil {
			logger.Error("Failed to initialize STT client", err)
		}
	}

	a.HealthChecker = services.NewHealthChecker(healthCheckInterval)
	for _, up := range upstreams(svc) {
		a.HealthChecker.RegisterService(up.Name, up.Endpoint)
	}

	mux := http.NewServeMux()
	endpoints.NewServer(a.Pipeline, a.OCR, a.recognizer(), a.history(), endpoints.Options{
		DefaultTarget:     svc.DefaultTarget,
		MaxUploadBytes:    svc.MaxUploadBytes(),
		MaxImageDimension: svc.OCR.MaxImageDimension,
		OCRLanguages:      svc.OCR.Languages,
	}).RegisterRoutes(mux)
	services.NewStatusServer(a.HealthChecker, a.components).RegisterRoutes(mux)

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", svc.Port),
		Handler:           endpoints.CORS(endpoints.Logging(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// recognizer and history keep nil components nil at the interface level.
func (a *App) recognizer() stt.Recognizer {
	if a.STT == nil {
		return nil
	}
	return a.STT
}

func (a *App) history() endpoints.History {
	if a.Cache == nil {
		return nil
	}
	return a.Cache
}

func (a *App) components() map[string]string {
	var p health.Pinger
	if a.Cache != nil {
		p = a.Cache
	}
	return health.Components(p, a.Config.Cache.Local, a.recognizer(), a.Config.Service.Speech, a.OCR)
}

// upstreams returns the configured upstreams plus the two the service always
// depends on: the vision model server and the transliteration server.
func upstreams(svc *config.ServiceConfig) []config.UpstreamEntry {
	var list []config.UpstreamEntry
	if svc.OCR.Engine == "vlm" {
		list = append(list, config.UpstreamEntry{Name: "ocr-model", Endpoint: rootURL(svc.OCR.ServerURL)})
	}
	list = append(list, config.UpstreamEntry{Name: "transliteration", Endpoint: translitProbe(svc.Transliteration.ServerURL)})
	return append(list, svc.Upstreams...)
}

// rootURL strips the path from an API url. Ollama answers 200 on its root.
func rootURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String()
}

// translitProbe is a tiny conversion request; the API has no health route.
func translitProbe(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("source", "ISO")
	q.Set("target", "Devanagari")
	q.Set("text", "a")
	u.RawQuery = q.Encode()
	return u.String()
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.Pool.Start()
	a.HealthChecker.Start()
	a.reportBoot()
	a.publishStatus("online", fmt.Sprintf("listening on %s", a.Server.Addr))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[HTTP] Listening on %s", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.publishStatus("offline", "shutting down")
	a.Close()
	return err
}

// Close releases every component. It is called by Run.
func (a *App) Close() {
	a.HealthChecker.Stop()
	a.Pool.Stop()
	if a.STT != nil {
		a.STT.Close()
	}
	if a.Cache != nil {
		logger.SetMirror(nil)
		if err := a.Cache.Close(); err != nil {
			log.Printf("[STATUS] Error closing cache: %v", err)
		}
	}
}

func (a *App) reportBoot() {
	snap := system.TakeSnapshot()
	comps := a.components()
	log.Printf("[STATUS] %s %s starting: cpu %.2f%%, memory %.2f%%", services.ServiceName, utils.GetVersion().Str, snap.CPUPercent, snap.MemoryPercent)
	log.Printf("[STATUS] cache: %s, speech: %s, ocr: %s", comps["cache"], comps["speech"], comps["ocr"])
}

func (a *App) publishStatus(status, details string) {
	if a.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev := utils.StatusChangeEvent{
		Type:      utils.EventTypeSystemStatusChange,
		Source:    services.ServiceName,
		Status:    status,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := a.Cache.PublishEvent(ctx, ev); err != nil {
		log.Printf("[STATUS] Failed to publish %s event: %v", status, err)
	}
}
