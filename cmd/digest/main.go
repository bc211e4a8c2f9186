package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tech-digest/internal/app"
	"tech-digest/internal/config"
	"tech-digest/internal/ingest"
	"tech-digest/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	job := flag.String("job", "articles", "job to run: articles, newsletters, social, weekly")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	orch := app.NewOrchestrator(cfg, logger)

	switch *job {
	case "weekly":
		if err := orch.RunWeekly(ctx); err != nil {
			logger.Error("Weekly digest failed", "error", err)
			os.Exit(1)
		}
	case "articles", "newsletters", "social":
		stats, err := orch.RunDigest(ctx, ingest.Kind(*job))
		if err != nil {
			logger.Error("Digest run failed", "job", *job, "error", err)
			os.Exit(1)
		}
		logger.Info("Digest run complete",
			"job", *job,
			"sources", stats.Sources,
			"feeds_ok", stats.FeedsOK,
			"feeds_failed", stats.FeedsFailed,
			"new_entries", stats.NewEntries)
	default:
		fmt.Fprintf(os.Stderr, "Unknown job %q: expected articles, newsletters, social or weekly\n", *job)
		os.Exit(1)
	}
}
