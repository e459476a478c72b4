package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/translit"
	"github.com/EasterCompany/dex-lipi-service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	mu    sync.Mutex
	texts []string
	fail  map[string]bool
	delay time.Duration
}

func (e *fakeEngine) Process(_ context.Context, source, target script.ID, text string) (string, error) {
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	e.mu.Lock()
	e.texts = append(e.texts, text)
	e.mu.Unlock()
	if e.fail[text] {
		return "", errors.New("engine failure")
	}
	return string(source) + ">" + string(target) + ":" + text, nil
}

func newPipeline(eng translit.Engine, workers int) (*Pipeline, func()) {
	conv := translit.NewConverter(eng)
	if workers == 0 {
		return New(conv, nil), func() {}
	}
	pool := worker.New(conv, workers, workers*2)
	pool.Start()
	return New(conv, pool), pool.Stop
}

func TestSplitLines(t *testing.T) {
	in := "  first  \n\n\tsecond\r\nthird\rfourth fifth\n   \n"
	assert.Equal(t, []string{"first", "second", "third", "fourth fifth"}, SplitLines(in))
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\u2028b\u0085c"))
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines(" \n \r\n "))
}

func TestProcess_MixedTranscript(t *testing.T) {
	for _, workers := range []int{0, 3} {
		eng := &fakeEngine{}
		p, stop := newPipeline(eng, workers)

		transcript := "Hello World\n  नमस्ते \n\nவணக்கம்\nInvoice 42"
		res := p.Process(context.Background(), transcript, "Latin")
		stop()

		assert.Equal(t, "Hello World\nनमस्ते\nவணக்கம்\nInvoice 42", res.Extracted)
		assert.Equal(t, []script.WritingSystem{script.English, script.Devanagari, script.Tamil, script.English}, res.Languages)
		assert.Equal(t, "Latin", res.Target)
		assert.Equal(t, "Hello World\nDevanagari>ISO:नमस्ते\nTamil>ISO:வணக்கம்\nInvoice 42", res.Transliterated)
		require.Len(t, res.Lines, 4)
		assert.Equal(t, "Devanagari>ISO:नमस्ते", res.Lines[1].Converted)
		assert.ElementsMatch(t, []string{"नमस्ते", "வணக்கம்"}, eng.texts, "English lines never reach the engine")
	}
}

func TestProcess_EnglishNeverConverted(t *testing.T) {
	eng := &fakeEngine{}
	p, stop := newPipeline(eng, 2)
	defer stop()

	res := p.Process(context.Background(), "Hello World", "Devanagari")
	assert.Equal(t, "Hello World", res.Transliterated)
	assert.Equal(t, []script.WritingSystem{script.English}, res.Languages)
	assert.Empty(t, eng.texts)
}

func TestProcess_PreservesOrderUnderConcurrency(t *testing.T) {
	eng := &fakeEngine{delay: 2 * time.Millisecond}
	p, stop := newPipeline(eng, 8)
	defer stop()

	var in, want []string
	for i := 0; i < 40; i++ {
		line := strings.Repeat("क", i+1)
		in = append(in, line)
		want = append(want, "Devanagari>Tamil:"+line)
	}
	res := p.Process(context.Background(), strings.Join(in, "\n"), "Tamil")
	assert.Equal(t, strings.Join(want, "\n"), res.Transliterated)
}

func TestProcess_OneFailureDoesNotAbortBatch(t *testing.T) {
	eng := &fakeEngine{fail: map[string]bool{"ਸਤਿ": true}}
	p, stop := newPipeline(eng, 2)
	defer stop()

	res := p.Process(context.Background(), "ਸਤਿ\nನಮಸ್ಕಾರ", "Latin")
	assert.Equal(t, "ਸਤਿ\nKannada>ISO:ನಮಸ್ಕಾರ", res.Transliterated)
}

func TestProcess_OriginalAndUnknownTargets(t *testing.T) {
	eng := &fakeEngine{}
	p, stop := newPipeline(eng, 0)
	defer stop()

	for _, target := range []string{script.Original, "Martian"} {
		res := p.Process(context.Background(), "নমস্কার\nHello", target)
		assert.Equal(t, res.Extracted, res.Transliterated)
	}
	assert.Empty(t, eng.texts)
}

func TestProcess_CanceledContextKeepsOriginal(t *testing.T) {
	eng := &fakeEngine{}
	p, stop := newPipeline(eng, 2)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := p.Process(ctx, "नमस्ते", "Latin")
	assert.Equal(t, "नमस्ते", res.Transliterated)
}

func TestProcess_EmptyTranscript(t *testing.T) {
	p, stop := newPipeline(&fakeEngine{}, 0)
	defer stop()

	res := p.Process(context.Background(), " \n ", "Latin")
	assert.Equal(t, "", res.Extracted)
	assert.Equal(t, "", res.Transliterated)
	assert.Empty(t, res.Languages)
}

func TestText(t *testing.T) {
	eng := &fakeEngine{}
	p, stop := newPipeline(eng, 0)
	defer stop()

	lang, out := p.Text(context.Background(), "Hello World", "Odia")
	assert.Equal(t, script.English, lang)
	assert.Equal(t, "Hello World", out)

	lang, out = p.Text(context.Background(), "नमस्ते", "Odia")
	assert.Equal(t, script.Devanagari, lang)
	assert.Equal(t, "Devanagari>Oriya:नमस्ते", out)

	out = p.TextAs(context.Background(), "नमस्ते", script.Marathi, "Bengali")
	assert.Equal(t, "Devanagari>Bengali:नमस्ते", out)
}

func TestRomanized(t *testing.T) {
	eng := &fakeEngine{}
	p, stop := newPipeline(eng, 0)
	defer stop()

	assert.Equal(t, "ISO>Devanagari:namaste", p.Romanized(context.Background(), "namaste", "Devanagari"))
	assert.Equal(t, "namaste", p.Romanized(context.Background(), "namaste", "Latin"))
	assert.Equal(t, "", p.Romanized(context.Background(), "", "Tamil"))
}
