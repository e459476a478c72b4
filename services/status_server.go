package services

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/EasterCompany/dex-lipi-service/system"
	"github.com/EasterCompany/dex-lipi-service/utils"
)

// ServiceName is reported on /status.
const ServiceName = "dex-lipi-service"

// StatusServer serves /status, /health and /services on the API mux.
type StatusServer struct {
	startTime     time.Time
	healthChecker *HealthChecker
	components    func() map[string]string
	snapshot      func() system.Snapshot
}

// NewStatusServer creates a new status server. components may be nil.
func NewStatusServer(healthChecker *HealthChecker, components func() map[string]string) *StatusServer {
	return &StatusServer{
		startTime:     time.Now(),
		healthChecker: healthChecker,
		components:    components,
		snapshot:      system.TakeSnapshot,
	}
}

// RegisterRoutes adds the status endpoints to mux.
func (ss *StatusServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", ss.handleStatus)
	mux.HandleFunc("GET /health", ss.handleHealth)
	mux.HandleFunc("GET /services", ss.handleServices)
}

// handleStatus returns detailed service status
func (ss *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(ss.startTime)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	metrics := utils.GetMetrics()
	metrics["goroutines"] = runtime.NumGoroutine()
	metrics["memory_alloc_mb"] = float64(m.Alloc) / 1024 / 1024
	metrics["memory_total_mb"] = float64(m.TotalAlloc) / 1024 / 1024
	metrics["memory_sys_mb"] = float64(m.Sys) / 1024 / 1024
	metrics["gc_runs"] = m.NumGC

	status := map[string]interface{}{
		"service":   ServiceName,
		"status":    "operational",
		"version":   utils.GetVersion(),
		"uptime":    uptime.Round(time.Second).String(),
		"timestamp": time.Now().Format(time.RFC3339),
		"metrics":   metrics,
		"system":    ss.snapshot(),
	}
	if ss.components != nil {
		status["components"] = ss.components()
	}
	if ss.healthChecker != nil {
		status["upstreams"] = ss.healthChecker.GetAllServices()
	}

	writeJSON(w, status)
}

// handleHealth returns simple health check (for load balancers)
func (ss *StatusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleServices returns status of all monitored upstreams
func (ss *StatusServer) handleServices(w http.ResponseWriter, r *http.Request) {
	services := map[string]*ServiceStatus{}
	if ss.healthChecker != nil {
		services = ss.healthChecker.GetAllServices()
	}
	writeJSON(w, map[string]interface{}{
		"services": services,
		"count":    len(services),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[STATUS] Error encoding response: %v", err)
	}
}
