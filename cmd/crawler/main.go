package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pickledex/paddle-scraper/internal/catalog"
	"github.com/pickledex/paddle-scraper/internal/config"
	"github.com/pickledex/paddle-scraper/internal/crawler"
	"github.com/pickledex/paddle-scraper/internal/extract"
	"github.com/pickledex/paddle-scraper/internal/fetcher"
	"github.com/pickledex/paddle-scraper/internal/images"
	"github.com/pickledex/paddle-scraper/internal/models"
	"github.com/pickledex/paddle-scraper/internal/ratelimit"
	"github.com/pickledex/paddle-scraper/internal/scrape"
	"github.com/pickledex/paddle-scraper/internal/sites"
)

func main() {
	var (
		siteName = flag.String("site", "Pickleball Galaxy", "site profile to crawl")
		outFile  = flag.String("out", "paddles.json", "output file for scraped records")
		upload   = flag.Bool("upload", false, "upload records to the catalog after crawling")
		limit    = flag.Int("limit", 0, "max product pages to scrape (0 = all)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := sites.NewRegistry()
	profile, ok := registry.ForName(*siteName)
	if !ok {
		logger.Error("unknown site", "site", *siteName, "available", registry.Names())
		os.Exit(1)
	}

	limiter := ratelimit.NewAdaptiveLimiter(cfg.Scraper.RateLimitMin, cfg.Scraper.RateLimitMax)
	pageFetcher := fetcher.New(limiter, logger, fetcher.Options{
		MaxRetries: cfg.Scraper.MaxRetries,
		RetryDelay: cfg.Scraper.RetryDelay,
		Timeout:    cfg.Scraper.FetchTimeout,
		UserAgents: cfg.Scraper.UserAgents,
	})

	urls, err := crawler.New(pageFetcher, logger).CollectProductURLs(ctx, profile)
	if err != nil {
		logger.Error("listing crawl failed", "site", profile.Name, "error", err)
		os.Exit(1)
	}
	if *limit > 0 && len(urls) > *limit {
		urls = urls[:*limit]
	}
	logger.Info("product pages discovered", "site", profile.Name, "count", len(urls))

	var downloader *images.Downloader
	if cfg.Images.Enabled {
		downloader = images.NewDownloader(cfg.Images.Dir, logger)
	}

	assembler := extract.NewAssembler(logger)
	service := scrape.New(pageFetcher, registry, assembler, downloader, nil, logger)

	summary := service.ScrapeBatch(ctx, urls, profile.Name, cfg.Scraper.ConcurrentLimit)
	logger.Info("crawl finished",
		"scraped", len(summary.Results),
		"rejected", summary.Rejected,
		"failed", summary.Failed,
	)

	if err := writeResults(*outFile, summary.Results); err != nil {
		logger.Error("failed to write results", "file", *outFile, "error", err)
		os.Exit(1)
	}
	logger.Info("results written", "file", *outFile)

	if *upload {
		paddles := make([]*models.Paddle, 0, len(summary.Results))
		for _, r := range summary.Results {
			paddles = append(paddles, r.Paddle)
		}

		client := catalog.NewClient(cfg.Catalog.BaseURL, logger)
		created, duplicates, err := client.UploadAll(ctx, paddles)
		logger.Info("catalog upload finished", "created", created, "duplicates", duplicates)
		if err != nil {
			logger.Error("catalog upload had failures", "error", err)
			os.Exit(1)
		}
	}
}

func writeResults(path string, results []*scrape.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
