package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EasterCompany/dex-lipi-service/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_CheckAll(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			_, _ = w.Write([]byte(`{"version":"0.5.1"}`))
		case "/plain":
			_, _ = w.Write([]byte("Ollama is running"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer upstream.Close()

	hc := NewHealthChecker(time.Hour)
	hc.RegisterService("json", upstream.URL+"/json")
	hc.RegisterService("plain", upstream.URL+"/plain")
	hc.RegisterService("down", upstream.URL+"/down")
	hc.RegisterService("offline", "http://127.0.0.1:1")

	assert.Equal(t, StatusUnknown, hc.GetServiceStatus("json").Status)

	hc.CheckAll()

	all := hc.GetAllServices()
	require.Len(t, all, 4)
	assert.Equal(t, StatusOK, all["json"].Status)
	assert.Equal(t, "0.5.1", all["json"].Version)
	assert.Equal(t, StatusOK, all["plain"].Status)
	assert.Equal(t, StatusBad, all["down"].Status)
	assert.Contains(t, all["down"].Error, "503")
	assert.Equal(t, StatusBad, all["offline"].Status)
	assert.NotEmpty(t, all["offline"].Error)

	assert.Nil(t, hc.GetServiceStatus("missing"))
}

func TestHealthChecker_StartStop(t *testing.T) {
	hits := make(chan struct{}, 10)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
	}))
	defer upstream.Close()

	hc := NewHealthChecker(time.Hour)
	hc.RegisterService("up", upstream.URL)
	hc.Start()
	select {
	case <-hits:
	case <-time.After(2 * time.Second):
		t.Fatal("upstream was never polled")
	}
	hc.Stop()
	assert.NotPanics(t, hc.Stop)
}

func TestStatusServer_Routes(t *testing.T) {
	hc := NewHealthChecker(time.Hour)
	hc.RegisterService("aksharamukha", "http://127.0.0.1:1")

	ss := NewStatusServer(hc, func() map[string]string {
		return map[string]string{"cache": "OK"}
	})
	ss.snapshot = func() system.Snapshot { return system.Snapshot{CPUPercent: 12.5} }
	mux := http.NewServeMux()
	ss.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, ServiceName, status["service"])
	assert.Equal(t, "operational", status["status"])
	assert.Equal(t, map[string]interface{}{"cache": "OK"}, status["components"])
	assert.Equal(t, 12.5, status["system"].(map[string]interface{})["cpu_percent"])
	metrics := status["metrics"].(map[string]interface{})
	assert.Contains(t, metrics, "ocr_requests")
	assert.Contains(t, metrics, "goroutines")
	assert.Contains(t, status["upstreams"], "aksharamukha")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
	var services struct {
		Count    int                       `json:"count"`
		Services map[string]*ServiceStatus `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	assert.Equal(t, 1, services.Count)
	assert.Equal(t, StatusUnknown, services.Services["aksharamukha"].Status)
}

func TestStatusServer_NoChecker(t *testing.T) {
	ss := NewStatusServer(nil, nil)
	mux := http.NewServeMux()
	ss.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
	assert.JSONEq(t, `{"services":{},"count":0}`, rec.Body.String())
}
