package cache

import (
	"context"
	"encoding/hex"
	"log"
	"time"

	"github.com/EasterCompany/dex-lipi-service/script"
	"github.com/EasterCompany/dex-lipi-service/translit"
	"github.com/zeebo/blake3"
)

// CachedEngine memoizes successful conversions of another engine. Cache
// errors are logged and never fail a conversion.
type CachedEngine struct {
	next  translit.Engine
	cache Cache
	ttl   time.Duration
}

// NewCachedEngine wraps next. A nil cache returns next unchanged.
func NewCachedEngine(c Cache, next translit.Engine, ttl time.Duration) translit.Engine {
	if c == nil {
		return next
	}
	return &CachedEngine{next: next, cache: c, ttl: ttl}
}

// ConversionKey is the cache key for converting text from source to target.
func ConversionKey(source, target script.ID, text string) string {
	sum := blake3.Sum256([]byte(string(source) + "\x00" + string(target) + "\x00" + text))
	return string(source) + ":" + string(target) + ":" + hex.EncodeToString(sum[:])
}

// Process implements translit.Engine.
func (e *CachedEngine) Process(ctx context.Context, source, target script.ID, text string) (string, error) {
	key := ConversionKey(source, target, text)
	if val, ok, err := e.cache.GetTransliteration(ctx, key); err != nil {
		log.Printf("[CACHE] lookup %s failed: %v", key, err)
	} else if ok {
		return val, nil
	}

	out, err := e.next.Process(ctx, source, target, text)
	if err != nil {
		return "", err
	}
	if err := e.cache.SetTransliteration(ctx, key, out, e.ttl); err != nil {
		log.Printf("[CACHE] store %s failed: %v", key, err)
	}
	return out, nil
}
