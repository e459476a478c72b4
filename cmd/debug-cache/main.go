package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/EasterCompany/dex-lipi-service/cache"
	"github.com/EasterCompany/dex-lipi-service/config"
	"github.com/EasterCompany/dex-lipi-service/utils"
)

func main() {
	clean := flag.Bool("clean-conversions", false, "delete every cached conversion and exit")
	flag.Parse()

	cfg, err := config.LoadAllConfigs()
	if err != nil {
		log.Fatalf("Fatal error loading config: %v", err)
	}

	debugCache, err := cache.New(cfg.Cache.Local)
	if err != nil {
		log.Fatalf("Failed to initialize local cache: %v", err)
	}
	if debugCache == nil {
		log.Fatalf("No local cache configured in %s", config.CacheFile)
	}
	defer func() { _ = debugCache.Close() }()

	ctx := context.Background()
	if *clean {
		n, err := debugCache.CleanConversions(ctx)
		if err != nil {
			log.Fatalf("Failed to clean conversions: %v", err)
		}
		fmt.Printf("Deleted %d cached conversions\n", n)
		return
	}

	keys, err := debugCache.Keys(ctx)
	if err != nil {
		log.Fatalf("Failed to get keys: %v", err)
	}

	for _, key := range keys {
		fmt.Printf("\n--- Key: %s ---\n", key)
		keyType, err := debugCache.Type(ctx, key)
		if err != nil {
			log.Printf("Failed to get type for key %s: %v", key, err)
			continue
		}
		fmt.Printf("Type: %s\n", keyType)

		switch keyType {
		case "string":
			val, err := debugCache.Get(ctx, key)
			if err != nil {
				log.Printf("Failed to get string value for key %s: %v", key, err)
				continue
			}
			fmt.Printf("Value: %s\n", val)
		case "list":
			vals, err := debugCache.LRange(ctx, key, 0, -1)
			if err != nil {
				log.Printf("Failed to get list value for key %s: %v", key, err)
				continue
			}
			fmt.Printf("Values:\n")
			for _, val := range vals {
				fmt.Printf("  - %s\n", formatEntry(key, val))
			}
		default:
			fmt.Println("Value: (unsupported type for printing)")
		}
	}
}

// formatEntry pretty prints history entries and passes other values through.
func formatEntry(key, val string) string {
	if key != cache.HistoryKey {
		return val
	}
	var ev utils.RequestEvent
	if err := json.Unmarshal([]byte(val), &ev); err != nil {
		return val
	}
	return fmt.Sprintf("%s [%s] %s -> %s (%d lines, %dms): %s",
		ev.Timestamp.Format("2006-01-02 15:04:05"), ev.Type, ev.Source, ev.Target, ev.Lines, ev.Duration,
		strings.ReplaceAll(ev.Output, "\n", " | "))
}
