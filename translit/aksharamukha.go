package translit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EasterCompany/dex-lipi-service/script"
)

// DefaultAksharamukhaURL is the public Aksharamukha transliteration API.
const DefaultAksharamukhaURL = "https://aksharamukha-plugin.appspot.com/api/public"

const maxResponseBytes = 1 << 20

// Aksharamukha is an Engine backed by an Aksharamukha HTTP endpoint.
type Aksharamukha struct {
	httpClient *http.Client
	BaseURL    string
}

// NewAksharamukha creates an engine for baseURL. An empty baseURL uses the
// public API.
func NewAksharamukha(baseURL string, timeout time.Duration) *Aksharamukha {
	if baseURL == "" {
		baseURL = DefaultAksharamukhaURL
	}
	return &Aksharamukha{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
	}
}

// Process implements Engine.
func (a *Aksharamukha) Process(ctx context.Context, source, target script.ID, text string) (string, error) {
	q := url.Values{}
	q.Set("source", string(source))
	q.Set("target", string(target))
	q.Set("text", text)

	sep := "?"
	if strings.Contains(a.BaseURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+sep+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create aksharamukha request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call aksharamukha: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read aksharamukha response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("aksharamukha returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}
