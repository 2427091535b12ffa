package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"enrichprj/internal/config"
	"enrichprj/internal/crawler"
	"enrichprj/internal/db"
	"enrichprj/internal/extractor"
	"enrichprj/internal/features"
	"enrichprj/internal/images"
	"enrichprj/internal/ingest"
	"enrichprj/internal/logger"
	"enrichprj/internal/model"
	"enrichprj/internal/observability"
	"enrichprj/internal/pipeline"
	"enrichprj/internal/repository"
	"enrichprj/internal/scoring"
)

// go run ./cmd/enrich --input links.csv
// go run ./cmd/enrich --input urls.txt --limit 20
func main() {
	input := pflag.StringP("input", "i", "", "Affiliate CSV export or plain URL list (required)")
	limit := pflag.Int("limit", 0, "Process at most this many records (0 = all)")
	noCache := pflag.Bool("no-cache", false, "Do not use the redis page cache even if configured")
	pflag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: enrich --input <file.csv|urls.txt> [--limit N]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, skipped, err := ingest.ReadFile(*input)
	if err != nil && len(records) == 0 {
		log.Fatal("could not read input", "path", *input, "error", err)
	}
	if err != nil {
		log.Warn("input read stopped early", "path", *input, "records", len(records), "error", err)
	}
	if len(skipped) > 0 {
		log.Warn("malformed rows skipped", "path", *input, "lines", skipped)
	}
	if *limit > 0 && len(records) > *limit {
		records = records[:*limit]
	}
	log.Info("input loaded", "path", *input, "records", len(records))

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal("could not open store", "driver", cfg.Database.Driver, "error", err)
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	stores := repository.NewStores(conn)

	var cache crawler.Cache
	if cfg.Redis.URL != "" && !*noCache {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, page cache disabled", "error", err)
		} else {
			cache = &crawler.PageCache{Client: rdb, TTL: cfg.Redis.PageTTL}
		}
	}

	scoringCfg, err := scoring.LoadConfig(cfg.Scoring.ConfigPath)
	if err != nil {
		log.Warn("scoring config not loaded, using defaults", "path", cfg.Scoring.ConfigPath, "error", err)
	}

	observability.Start(cfg.Metrics.Port)

	fetcher := crawler.NewFetcher(cfg.Crawler.Timeout, cfg.Crawler.Delay, cfg.Crawler.UserAgent, cache, log)
	ext := extractor.New(crawler.NewPageSource(fetcher), log)
	ext.OnAttempt = pipeline.CountPasses

	mgr := ingest.NewManager(stores.Products, stores.Links, log)
	mgr.Freshness = cfg.Ingest.Freshness
	mgr.AffiliateTag = cfg.Affiliate.Tag

	limits := features.DefaultLimits
	limits.MaxPros, limits.MaxCons = cfg.Features.MaxPros, cfg.Features.MaxCons

	p := &pipeline.Pipeline{
		Ingest:       mgr,
		Extractor:    ext,
		Features:     features.New(limits),
		Scoring:      scoring.NewEngine(scoringCfg, log),
		Products:     stores.Products,
		FeatureStore: stores.Features,
		Scores:       stores.Scores,
		Images:       imageUploader(ctx, cfg, log),
		Runs:         runRecorder(ctx, cfg, log),
		Log:          log,
	}

	stats := p.Run(ctx, filepath.Base(*input), records)
	printSummary(stats)
	if stats.Total > 0 && stats.Failed() == stats.Total {
		os.Exit(1)
	}
}

func imageUploader(ctx context.Context, cfg *config.Config, log *logger.Logger) pipeline.ImageUploader {
	if cfg.Images.Bucket == "" {
		return pipeline.NopUploader{}
	}
	store, err := images.NewGCSStore(ctx, cfg.Images.Bucket, cfg.Images.CDNDomain)
	if err != nil {
		log.Warn("image bucket unavailable, keeping marketplace image urls", "bucket", cfg.Images.Bucket, "error", err)
		return pipeline.NopUploader{}
	}
	return images.NewUploader(store, cfg.Images.Timeout, log)
}

// runRecorder writes ingest_runs through pgx on postgres and falls back to
// a log line elsewhere.
func runRecorder(ctx context.Context, cfg *config.Config, log *logger.Logger) pipeline.RunRecorder {
	if cfg.Database.Driver != db.DriverPostgres {
		return pipeline.LogRecorder{Log: log}
	}
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Warn("pgx pool unavailable, run audit goes to the log", "error", err)
		return pipeline.LogRecorder{Log: log}
	}
	return &poolRecorder{repo: &repository.RunRepository{DB: pool}, log: log}
}

type poolRecorder struct {
	repo *repository.RunRepository
	log  *logger.Logger
}

func (r *poolRecorder) Record(ctx context.Context, run model.IngestRun) error {
	defer r.repo.DB.Close()
	if err := r.repo.Record(ctx, run); err != nil {
		return err
	}
	return pipeline.LogRecorder{Log: r.log}.Record(ctx, run)
}

func printSummary(stats pipeline.Stats) {
	data := pterm.TableData{{"Outcome", "Records"}}
	for _, o := range stats.Sorted() {
		data = append(data, []string{o, strconv.Itoa(stats.Outcomes[o])})
	}
	data = append(data, []string{"total", strconv.Itoa(stats.Total)})

	pterm.DefaultSection.Println("Enrichment run")
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
