// Package pipeline turns an OCR transcript into classified, converted lines.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/EasterCompany/dex-lipi-service/worker"
)

// Converter is satisfied by *translit.Converter.
type Converter interface {
	Convert(ctx context.Context, text string, detected script.WritingSystem, target string) string
}

// Line is one non-empty transcript line after processing.
type Line struct {
	Text      string               `json:"text"`
	Language  script.WritingSystem `json:"language"`
	Converted string               `json:"converted"`
}

// Result is the processed form of a transcript.
type Result struct {
	Extracted      string                 `json:"extracted_text"`
	Languages      []script.WritingSystem `json:"language_per_line"`
	Target         string                 `json:"target_script"`
	Transliterated string                 `json:"transliterated"`
	Lines          []Line                 `json:"lines"`
}

// Pipeline classifies and converts lines. A nil pool converts inline.
type Pipeline struct {
	converter Converter
	pool      *worker.WorkerPool
}

// New creates a Pipeline. pool may be nil.
func New(converter Converter, pool *worker.WorkerPool) *Pipeline {
	return &Pipeline{converter: converter, pool: pool}
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1C, 0x1D, 0x1E, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// SplitLines splits a transcript on line breaks, trims each line and drops
// the empty ones.
func SplitLines(transcript string) []string {
	var lines []string
	for _, ln := range strings.FieldsFunc(transcript, isLineBreak) {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// Process classifies every line of transcript and converts the non-English
// ones to target. English lines are kept as they are so names and technical
// tokens survive.
func (p *Pipeline) Process(ctx context.Context, transcript, target string) Result {
	texts := SplitLines(transcript)
	lines := make([]Line, len(texts))
	languages := make([]script.WritingSystem, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		lang := script.Classify(text)
		languages[i] = lang
		lines[i] = Line{Text: text, Language: lang, Converted: text}
		if lang == script.English {
			continue
		}
		i := i
		wg.Add(1)
		p.convert(ctx, text, lang, target, func(out string) {
			lines[i].Converted = out
			wg.Done()
		})
	}
	wg.Wait()
	utils.AddLinesClassified(len(texts))

	converted := make([]string, len(lines))
	for i, ln := range lines {
		converted[i] = ln.Converted
	}
	return Result{
		Extracted:      strings.Join(texts, "\n"),
		Languages:      languages,
		Target:         target,
		Transliterated: strings.Join(converted, "\n"),
		Lines:          lines,
	}
}

// Text classifies text as a whole and converts it unless it is English.
func (p *Pipeline) Text(ctx context.Context, text, target string) (script.WritingSystem, string) {
	lang := script.Classify(text)
	utils.AddLinesClassified(1)
	return lang, p.TextAs(ctx, text, lang, target)
}

// TextAs converts text that is known to be written as lang. English text is
// returned unchanged.
func (p *Pipeline) TextAs(ctx context.Context, text string, lang script.WritingSystem, target string) string {
	if lang == script.English {
		return text
	}
	return p.converter.Convert(ctx, text, lang, target)
}

// Romanized converts romanized text (for example a speech transcript) to
// target.
func (p *Pipeline) Romanized(ctx context.Context, text, target string) string {
	return p.converter.Convert(ctx, text, script.English, target)
}

func (p *Pipeline) convert(ctx context.Context, text string, lang script.WritingSystem, target string, done func(string)) {
	if p.pool == nil {
		done(p.converter.Convert(ctx, text, lang, target))
		return
	}
	p.pool.Submit(worker.ConversionJob{
		Ctx:      ctx,
		Text:     text,
		Language: lang,
		Target:   target,
		Done:     done,
	})
}
