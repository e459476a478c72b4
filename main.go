package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/EasterCompany/dex-lipi-service/app"
	"github.com/EasterCompany/dex-lipi-service/config"
	logger "github.com/EasterCompany/dex-lipi-service/log"
	_ "github.com/EasterCompany/dex-lipi-service/ocr/tesseract"
	"github.com/EasterCompany/dex-lipi-service/utils"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()
	if *showVersion {
		v := utils.GetVersion()
		fmt.Printf("dex-lipi-service %s (%s@%s, built %s, %s)\n", v.Str, v.Branch, v.Commit, v.BuildDate, v.Arch)
		return
	}

	// 1. Load Configuration
	cfg, err := config.LoadAllConfigs()
	if err != nil {
		log.Fatalf("Fatal error loading config: %v", err)
	}

	// 2. Route error logs to Discord when a log channel is configured
	if cfg.Discord.Token != "" && cfg.Discord.LogChannelID != "" {
		if _, err := logger.Connect(cfg.Discord.Token, cfg.Discord.LogChannelID); err != nil {
			logger.Error("Discord log sink disabled", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// 3. Build the service
	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to start service", err)
	}

	// 4. Serve until a shutdown signal
	if err := a.Run(ctx); err != nil {
		logger.Fatal("Service stopped with error", err)
	}
	log.Println("[STATUS] Service shut down.")
}
