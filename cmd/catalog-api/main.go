package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enrichprj/internal/api"
	"enrichprj/internal/config"
	"enrichprj/internal/db"
	"enrichprj/internal/logger"
	"enrichprj/internal/observability"
	"enrichprj/internal/repository"
)

func main() {
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

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal("could not open store", "error", err)
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	stores := repository.NewStores(conn)

	observability.Start(cfg.Metrics.Port)

	h := &api.Handler{
		Products: stores.Products,
		Features: stores.Features,
		Links:    stores.Links,
		Scores:   stores.Scores,
		Ping:     conn.PingContext,
		Log:      log,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.API.Port,
		Handler:           api.NewRouter(h, cfg.Log.Mode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("catalog api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
