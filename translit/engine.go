// Package translit decides whether a piece of text needs converting to
// another script and delegates the conversion to an external engine.
package translit

import (
	"context"

	"github.com/EasterCompany/dex-lipi-service/script"
)

// Engine converts text from one script to another.
type Engine interface {
	Process(ctx context.Context, source, target script.ID, text string) (string, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, source, target script.ID, text string) (string, error)

func (f EngineFunc) Process(ctx context.Context, source, target script.ID, text string) (string, error) {
	return f(ctx, source, target, text)
}
