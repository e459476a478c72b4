//go:build tesseract

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/otiai10/gosseract/v2"
)

func init() {
	ocr.Register("tesseract", func(cfg ocr.Config) (ocr.Engine, error) {
		return NewEngine(cfg.Languages), nil
	})
}

// Engine implements ocr.Engine with a fresh gosseract client per image.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewEngine returns an engine using the given traineddata languages when an
// input does not name its own.
func NewEngine(languages []string) *Engine {
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs Tesseract over a single image.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	langs := in.Languages
	if len(langs) == 0 {
		langs = e.languages
	}
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	return ocr.Result{Text: strings.TrimSpace(text), Engine: e.Name()}, nil
}
