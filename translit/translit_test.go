package translit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	source, target script.ID
	text           string
}

// recordingEngine tags its output so tests can tell converted text apart.
type recordingEngine struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (e *recordingEngine) Process(_ context.Context, source, target script.ID, text string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call{source, target, text})
	if e.err != nil {
		return "", e.err
	}
	return "[" + string(target) + "]" + text, nil
}

func TestConvert_EmptyInput(t *testing.T) {
	eng := &recordingEngine{}
	c := NewConverter(eng)
	for _, label := range script.Labels() {
		for _, sel := range append(script.Selectors(), "Martian", "") {
			assert.Equal(t, "", c.Convert(context.Background(), "", label, sel))
		}
	}
	assert.Empty(t, eng.calls)
}

func TestConvert_OriginalIsVerbatim(t *testing.T) {
	eng := &recordingEngine{}
	c := NewConverter(eng)
	for _, text := range []string{"नमस्ते", "Hello", "  spaced  ", "ನಮಸ್ಕಾರ\n"} {
		assert.Equal(t, text, c.Convert(context.Background(), text, script.Classify(text), script.Original))
	}
	assert.Empty(t, eng.calls)
}

func TestConvert_UnresolvedPassesThrough(t *testing.T) {
	eng := &recordingEngine{}
	c := NewConverter(eng)
	ctx := context.Background()

	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", script.Devanagari, "Martian"))
	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", script.Unknown, "Latin"))
	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", "Klingon", "Latin"))
	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", script.Devanagari, "latin"))
	assert.Empty(t, eng.calls)
}

func TestConvert_SameScriptIsNoop(t *testing.T) {
	eng := &recordingEngine{}
	c := NewConverter(eng)
	ctx := context.Background()

	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", script.Devanagari, "Devanagari"))
	assert.Equal(t, "नमस्ते", c.Convert(ctx, "नमस्ते", script.Marathi, "Devanagari"))
	assert.Equal(t, "hello", c.Convert(ctx, "hello", script.English, "Latin"))
	assert.Equal(t, "ନମସ୍କାର", c.Convert(ctx, "ନମସ୍କାର", script.Odia, "Odia"))
	assert.Empty(t, eng.calls)
}

func TestConvert_CallsEngine(t *testing.T) {
	eng := &recordingEngine{}
	c := NewConverter(eng)

	got := c.Convert(context.Background(), "नमस्ते", script.Classify("नमस्ते"), "Latin")
	assert.Equal(t, "[ISO]नमस्ते", got)
	assert.NotEqual(t, "नमस्ते", got)
	require.Len(t, eng.calls, 1)
	assert.Equal(t, call{script.IDDevanagari, script.IDISO, "नमस्ते"}, eng.calls[0])

	got = c.Convert(context.Background(), "namaste", script.English, "Odia")
	assert.Equal(t, "[Oriya]namaste", got)
}

func TestConvert_EngineFailureKeepsOriginal(t *testing.T) {
	eng := &recordingEngine{err: errors.New("boom")}
	c := NewConverter(eng)
	assert.Equal(t, "নমস্কার", c.Convert(context.Background(), "নমস্কার", script.Bengali, "Tamil"))
	assert.Len(t, eng.calls, 1)
}

func TestConvert_EnginePanicKeepsOriginal(t *testing.T) {
	c := NewConverter(EngineFunc(func(context.Context, script.ID, script.ID, string) (string, error) {
		panic("engine exploded")
	}))
	assert.NotPanics(t, func() {
		assert.Equal(t, "வணக்கம்", c.Convert(context.Background(), "வணக்கம்", script.Tamil, "Latin"))
	})
}

func TestConvert_NilEngine(t *testing.T) {
	c := NewConverter(nil)
	assert.Equal(t, "வணக்கம்", c.Convert(context.Background(), "வணக்கம்", script.Tamil, "Latin"))
}

func TestConvert_ConcurrentFailuresAreIsolated(t *testing.T) {
	var n atomic.Int32
	c := NewConverter(EngineFunc(func(_ context.Context, _, _ script.ID, text string) (string, error) {
		if n.Add(1)%2 == 0 {
			return "", errors.New("flaky")
		}
		return "ok:" + text, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := c.Convert(context.Background(), "ਸਤਿ", script.Punjabi, "Latin")
			assert.Contains(t, []string{"ਸਤਿ", "ok:ਸਤਿ"}, out)
		}()
	}
	wg.Wait()
}

func TestAksharamukha_Process(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "Devanagari", q.Get("source"))
		assert.Equal(t, "ISO", q.Get("target"))
		assert.Equal(t, "नमस्ते", q.Get("text"))
		_, _ = w.Write([]byte("namastē"))
	}))
	defer srv.Close()

	eng := NewAksharamukha(srv.URL, time.Second)
	out, err := eng.Process(context.Background(), script.IDDevanagari, script.IDISO, "नमस्ते")
	require.NoError(t, err)
	assert.Equal(t, "namastē", out)
}

func TestAksharamukha_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad script", http.StatusBadRequest)
	}))
	defer srv.Close()

	eng := NewAksharamukha(srv.URL, time.Second)
	_, err := eng.Process(context.Background(), script.IDTamil, script.IDISO, "வ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad script")

	// Through the converter the failure degrades to the original text.
	assert.Equal(t, "வ", NewConverter(eng).Convert(context.Background(), "வ", script.Tamil, "Latin"))
}

func TestAksharamukha_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultAksharamukhaURL, NewAksharamukha("", time.Second).BaseURL)
}
