package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wellschizhou/recession-mrf/internal/collector"
	"github.com/wellschizhou/recession-mrf/internal/config"
	"github.com/wellschizhou/recession-mrf/internal/pipeline"
	"github.com/wellschizhou/recession-mrf/internal/recorder"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] starting data collection for recession MRF")

	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	log.Println("[INFO] FRED API key loaded")

	start, err := time.ParseInLocation("2006-01-02", cfg.FRED.StartDate, time.UTC)
	if err != nil {
		log.Fatalf("[FATAL] parse fred.start_date: %v", err)
	}

	// Init fetchers
	fredFetcher := collector.NewFREDFetcher(cfg.FRED.BaseURL, cfg.FRED.APIKey, cfg.Proxy)
	col := collector.NewCollector(fredFetcher, start)
	panelFetcher := collector.NewFREDMDFetcher(cfg.FREDMD.URL, cfg.Proxy)
	log.Printf("[INFO] data sources: %s, %s", fredFetcher.Name(), panelFetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	pipe := pipeline.New(col, panelFetcher, cfg.Output.DatasetPath, cfg.Output.PositionsPath, rec)

	if cfg.Schedule.RefreshCron == "" {
		if err := pipe.Run(); err != nil {
			log.Fatalf("[FATAL] pipeline: %v\n\nDouble-check your .env file setup", err)
		}
		return
	}

	// Daemon mode: run once now, then refresh on schedule.
	if err := pipe.Run(); err != nil {
		log.Printf("[ERROR] initial run: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	if err := pipe.RunForever(ctx, cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] refresh scheduler: %v", err)
	}
}
