package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citracker/api"
	"citracker/config"
	"citracker/core/dataset"
	"citracker/core/geo"
	"citracker/core/metrics"
	"citracker/core/session"
	"citracker/core/store"
	"citracker/core/utils"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config path (environment overrides)")
	flag.Parse()

	logger := utils.NewLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}

	db, err := store.NewDB(cfg, logger)
	if err != nil {
		logger.Errorf("database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New()

	loadStart := time.Now()
	facts := store.NewFactsStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	rawRows, err := facts.LoadFacts(ctx)
	if err != nil {
		cancel()
		logger.Errorf("load facts: %v", err)
		os.Exit(1)
	}
	subtypes, err := facts.LoadSubtypes(ctx)
	cancel()
	if err != nil {
		logger.Errorf("load subtypes: %v", err)
		os.Exit(1)
	}

	carve := dataset.CarveOut{
		Enabled: cfg.Dataset.CarveOut.Enabled,
		Country: cfg.Dataset.CarveOut.Country,
		Region:  cfg.Dataset.CarveOut.Region,
		After:   cfg.Dataset.CarveOut.AfterTime(),
	}
	table := dataset.NewCanonicalizer(carve, geo.Alpha2).Run(rawRows)

	m.LoadDuration.Set(time.Since(loadStart).Seconds())
	m.DatasetRows.Set(float64(table.Len()))
	m.DatasetIncidents.Set(float64(table.DistinctIncidents()))
	logger.Infof("canonical table ready: rows=%d incidents=%d subtypes=%d in %s",
		table.Len(), table.DistinctIncidents(), len(subtypes), time.Since(loadStart))

	sessions := session.NewStore(cfg.EffectiveSessionTTL())
	go func() {
		tick := time.NewTicker(30 * time.Second)
		defer tick.Stop()
		for range tick.C {
			m.LiveSessions.Set(float64(sessions.Len()))
		}
	}()

	srv := api.NewServer(api.ServerDeps{
		Cfg:      cfg,
		Table:    table,
		Subtypes: subtypes,
		Sessions: sessions,
		Metrics:  m,
		Logger:   logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http server: %v", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Infof("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
}
