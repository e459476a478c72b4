package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Upstream states.
const (
	StatusOK      = "OK"
	StatusBad     = "BAD"
	StatusUnknown = "N/A"
)

// ServiceStatus is the last known state of an upstream this service calls.
type ServiceStatus struct {
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Version      string    `json:"version,omitempty"`
	LastCheck    time.Time `json:"last_check"`
	ResponseTime int64     `json:"response_time"` // milliseconds
	Endpoint     string    `json:"endpoint"`
	Error        string    `json:"error,omitempty"`
}

// HealthChecker polls upstream endpoints (vision model server, transliteration
// server) on an interval.
type HealthChecker struct {
	mu            sync.RWMutex
	services      map[string]*ServiceStatus
	client        *http.Client
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewHealthChecker creates a new upstream health checker
func NewHealthChecker(checkInterval time.Duration) *HealthChecker {
	return &HealthChecker{
		services: make(map[string]*ServiceStatus),
		client: &http.Client{
			Timeout: 2 * time.Second,
		},
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
	}
}

// RegisterService adds an upstream to monitor
func (hc *HealthChecker) RegisterService(name, endpoint string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.services[name] = &ServiceStatus{
		Name:      name,
		Status:    StatusUnknown,
		Endpoint:  endpoint,
		LastCheck: time.Now(),
	}

	log.Printf("[HEALTH] Registered upstream: %s (%s)", name, endpoint)
}

// Start begins monitoring all registered upstreams
func (hc *HealthChecker) Start() {
	go hc.monitorLoop()
	log.Println("[HEALTH] Upstream health checker started")
}

// Stop halts the health checker. It is safe to call more than once.
func (hc *HealthChecker) Stop() {
	hc.stopOnce.Do(func() {
		close(hc.stopChan)
		log.Println("[HEALTH] Upstream health checker stopped")
	})
}

func (hc *HealthChecker) monitorLoop() {
	hc.CheckAll()

	ticker := time.NewTicker(hc.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			hc.CheckAll()
		case <-hc.stopChan:
			return
		}
	}
}

// CheckAll polls every registered upstream and waits for the results.
func (hc *HealthChecker) CheckAll() {
	hc.mu.RLock()
	services := make(map[string]string) // name -> endpoint
	for name, status := range hc.services {
		services[name] = status.Endpoint
	}
	hc.mu.RUnlock()

	var wg sync.WaitGroup
	for name, endpoint := range services {
		wg.Add(1)
		go func(name, endpoint string) {
			defer wg.Done()
			hc.checkService(name, endpoint)
		}(name, endpoint)
	}
	wg.Wait()
}

// checkService polls a single upstream. Any 2xx answer is healthy; when the
// body is JSON with a "version" field it is recorded too.
func (hc *HealthChecker) checkService(name, endpoint string) {
	startTime := time.Now()

	resp, err := hc.client.Get(endpoint)
	responseTime := time.Since(startTime).Milliseconds()

	hc.mu.Lock()
	defer hc.mu.Unlock()

	status, ok := hc.services[name]
	if !ok {
		if err == nil {
			_ = resp.Body.Close()
		}
		return
	}
	status.LastCheck = time.Now()
	status.ResponseTime = responseTime
	status.Error = ""

	if err != nil {
		status.Status = StatusBad
		status.Version = ""
		status.Error = err.Error()
		log.Printf("[HEALTH] %s: OFFLINE (%v)", name, err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status.Status = StatusBad
		status.Error = resp.Status
		log.Printf("[HEALTH] %s: DEGRADED (HTTP %d)", name, resp.StatusCode)
		return
	}

	status.Status = StatusOK
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var payload map[string]interface{}
		if json.Unmarshal(body, &payload) == nil {
			if version, ok := payload["version"].(string); ok {
				status.Version = version
			}
		}
	}
}

// GetServiceStatus returns the current status of an upstream
func (hc *HealthChecker) GetServiceStatus(name string) *ServiceStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	if status, ok := hc.services[name]; ok {
		statusCopy := *status
		return &statusCopy
	}
	return nil
}

// GetAllServices returns status of all upstreams
func (hc *HealthChecker) GetAllServices() map[string]*ServiceStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	servicesCopy := make(map[string]*ServiceStatus)
	for name, status := range hc.services {
		statusCopy := *status
		servicesCopy[name] = &statusCopy
	}
	return servicesCopy
}
