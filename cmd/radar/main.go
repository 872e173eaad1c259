package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"

	"main/internal/api"
	"main/internal/feed"
	"main/internal/notify"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/pipeline"
	"main/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Printf("radar: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to JSON config")
	listenAddr := flag.String("listen", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "Sqlite database path (overrides config)")
	profileAddr := flag.String("profile", "", "Pyroscope server address (enables profiling)")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		return err
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *profileAddr != "" {
		cfg.Profiling = ops.ProfileConfig{Enabled: true, ServerAddress: *profileAddr}
	}

	if cfg.Profiling.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "market-news-radar",
			ServerAddress:   cfg.Profiling.ServerAddress,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := obs.NewMetrics()
	hub := notify.NewHub(metrics)
	fetcher := feed.NewFetcher(feed.FetcherOption{
		Metrics:    metrics,
		ContactURL: cfg.ContactURL,
		Timeout:    cfg.FetchTimeout,
		UnitDelay:  cfg.UnitDelay,
	})
	runner := pipeline.NewRunner(st, fetcher, hub, metrics, nil)

	go runner.RunPeriodically(ctx)

	server := api.NewServer(st, runner, hub, metrics, cfg.AdminToken)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logs.Infof("radar listening on %s, db %s", cfg.ListenAddr, cfg.DBPath)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
