package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"enrichprj/internal/config"
	"enrichprj/internal/db"
	"enrichprj/internal/features"
	"enrichprj/internal/logger"
	"enrichprj/internal/model"
	"enrichprj/internal/observability"
	"enrichprj/internal/pipeline"
	"enrichprj/internal/repository"
	"enrichprj/internal/scoring"
)

type result struct {
	id  string
	set model.ScoreSet
	err error
}

func main() {
	full := pflag.Bool("regenerate", false, "Also regenerate features, pretty title and summary")
	workers := pflag.IntP("workers", "w", 8, "Concurrent workers")
	scoringPath := pflag.String("scoring-config", "", "Scoring YAML (defaults to scoring.config_path)")
	show := pflag.Int("show", 20, "Rows to print in the summary table, highest overall first")
	pflag.Parse()

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

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal("could not open store", "error", err)
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	stores := repository.NewStores(conn)

	path := cfg.Scoring.ConfigPath
	if *scoringPath != "" {
		path = *scoringPath
	}
	scoringCfg, err := scoring.LoadConfig(path)
	if err != nil {
		log.Warn("scoring config not loaded, using defaults", "path", path, "error", err)
	}
	observability.Register()

	limits := features.DefaultLimits
	limits.MaxPros, limits.MaxCons = cfg.Features.MaxPros, cfg.Features.MaxCons
	p := &pipeline.Pipeline{
		Features:     features.New(limits),
		Scoring:      scoring.NewEngine(scoringCfg, log),
		Products:     stores.Products,
		FeatureStore: stores.Features,
		Scores:       stores.Scores,
		Log:          log,
	}

	ids, err := stores.Products.IDs(ctx)
	if err != nil {
		log.Fatal("could not list products", "error", err)
	}
	log.Info("rescoring catalog", "products", len(ids), "method", p.Scoring.Method(), "regenerate", *full)

	if *workers < 1 {
		*workers = 1
	}
	jobs := make(chan string, len(ids))
	results := make(chan result, len(ids))
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				set, err := p.Refresh(ctx, id, *full)
				results <- result{id: id, set: set, err: err}
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	close(results)

	var done []result
	failed := 0
	for r := range results {
		if r.err != nil {
			failed++
			log.Error("rescore failed", "marketplace_id", r.id, "error", r.err)
			continue
		}
		done = append(done, r)
	}
	sort.Slice(done, func(i, j int) bool { return done[i].set.Overall > done[j].set.Overall })

	data := pterm.TableData{{"Product", "Method", "Overall"}}
	for i, r := range done {
		if i >= *show {
			break
		}
		data = append(data, []string{r.id, r.set.Method, strconv.FormatFloat(r.set.Overall, 'f', 2, 64)})
	}
	pterm.DefaultSection.Println("Rescore")
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printfln("%d rescored, %d failed", len(done), failed)

	if failed > 0 && len(done) == 0 {
		os.Exit(1)
	}
}
