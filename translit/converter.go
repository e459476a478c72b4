package translit

import (
	"context"
	"fmt"
	"log"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/utils"
)

// Converter dispatches conversions to an Engine. Unsupported combinations and
// engine failures return the input unchanged; Convert never fails.
type Converter struct {
	engine Engine
}

// NewConverter creates a Converter backed by engine.
func NewConverter(engine Engine) *Converter {
	return &Converter{engine: engine}
}

// Convert returns text rewritten in the script named by target, assuming it is
// currently written in the script of detected.
func (c *Converter) Convert(ctx context.Context, text string, detected script.WritingSystem, target string) string {
	if text == "" {
		return ""
	}
	if script.IsOriginal(target) {
		return text
	}

	src, srcOK := script.SourceScript(detected)
	tgt, tgtOK := script.TargetScript(target)
	if !srcOK || !tgtOK {
		return text
	}
	if src == tgt {
		return text
	}

	out, err := c.process(ctx, src, tgt, text)
	if err != nil {
		utils.IncrementEngineFailures()
		log.Printf("[TRANSLIT] %s -> %s failed, keeping original: %v", src, tgt, err)
		return text
	}
	utils.IncrementConversions()
	return out
}

// process isolates a single engine call so a panicking engine only loses
// this one conversion.
func (c *Converter) process(ctx context.Context, src, tgt script.ID, text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()
	if c.engine == nil {
		return "", fmt.Errorf("no transliteration engine configured")
	}
	return c.engine.Process(ctx, src, tgt, text)
}
