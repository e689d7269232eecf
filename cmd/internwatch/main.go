package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"internwatch/internal/classify"
	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/fetch"
	"internwatch/internal/notify"
	"internwatch/internal/resolve"
	"internwatch/internal/run"
	"internwatch/internal/scrape"
	"internwatch/internal/scrape/amazon"
	"internwatch/internal/scrape/generic"
	"internwatch/internal/scrape/greenhouse"
	"internwatch/internal/scrape/lever"
	"internwatch/internal/scrape/lyft"
	"internwatch/internal/scrape/workday"
	"internwatch/internal/store"
	"internwatch/internal/track"
)

// internwatch runs a single scan of every configured company and reports
// new internship postings. Scheduling cadence belongs to cron or a CI
// workflow, not this binary.
func main() {
	cfgPath := flag.String("config", filepath.Join("config", "config.yml"), "path to config file")
	companiesPath := flag.String("companies", "", "optional companies overlay file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", *cfgPath, err)
	}
	if *companiesPath != "" {
		if err := config.OverlayCompanies(&cfg, *companiesPath); err != nil {
			log.Fatalf("companies overlay failed (%s): %v", *companiesPath, err)
		}
	}

	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			log.Printf("[config] error: %s", e)
		}
		os.Exit(1)
	}

	dataDir := cfg.App.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	timeout := time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second
	limiter := fetch.NewHostLimiter(cfg.Scrape.PerHostRPS, cfg.Scrape.PerHostBurst)
	client := fetch.New(timeout, limiter)

	// source cache is best-effort; resolution works without it
	var cache resolve.Cache
	db, err := store.Open(filepath.Join(dataDir, "internwatch.db"))
	if err != nil {
		log.Printf("[store] cache unavailable: %v", err)
	} else {
		defer db.Close()
		cache = store.NewSourceCache(db, 7*24*time.Hour)
	}

	resolver := resolve.New(client, cfg.Overrides, cache)

	fanout := cfg.Scrape.DetailFanout
	heuristic := generic.New(client, cfg.Keywords, fanout)

	registry := scrape.NewRegistry(heuristic)
	registry.Register(resolve.PlatformGreenhouse, greenhouse.New(client, cfg.Keywords, fanout, heuristic))
	registry.Register(resolve.PlatformLever, lever.New(client, cfg.Keywords, fanout, heuristic))
	registry.Register(resolve.PlatformWorkday, workday.New(client, timeout, cfg.Keywords, fanout, heuristic))
	registry.Register(resolve.PlatformAmazon, amazon.New(heuristic))
	registry.Register(resolve.PlatformLyft, lyft.New(heuristic))

	classifier := classify.New(
		cfg.Keywords,
		time.Duration(cfg.Recency.MaxAgeMinutes)*time.Minute,
		cfg.Recency.AcceptUndated,
	)

	tracker, err := track.Open(filepath.Join(dataDir, cfg.Tracker.Path))
	if err != nil {
		log.Fatalf("tracker open failed: %v", err)
	}

	companies := make([]domain.Company, 0, len(cfg.Companies))
	for _, name := range cfg.Companies {
		companies = append(companies, domain.NewCompany(name))
	}

	pipeline := &run.Pipeline{
		Resolver:       resolver,
		Registry:       registry,
		Classifier:     classifier,
		Workers:        cfg.Scrape.Workers,
		CompanyTimeout: 2 * time.Minute,
	}

	start := time.Now()
	log.Printf("[main] scanning %d companies with %d workers", len(companies), cfg.Scrape.Workers)

	classified := pipeline.Run(context.Background(), companies)
	fresh := tracker.FilterNew(classified)

	if err := tracker.Flush(); err != nil {
		log.Printf("[tracker] flush failed: %v", err)
	}

	log.Printf("[main] done in %s: %d classified, %d new", time.Since(start).Round(time.Second), len(classified), len(fresh))
	for _, p := range fresh {
		log.Printf("[main] new: %q at %s (%s) %s", p.Title, p.CompanyName, p.Location, p.URL)
	}

	if err := notify.NewMailer(cfg.Notify).Send(fresh); err != nil {
		log.Printf("[notify] %v", err)
	}
}
