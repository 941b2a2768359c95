package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"atletica/internal/cache"
	"atletica/internal/calendar"
	"atletica/internal/catalog"
	"atletica/internal/cli"
	"atletica/internal/clock"
	"atletica/internal/core"
	apphttp "atletica/internal/http"
	applog "atletica/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Fatal(nil, "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg)

	lo, hi, err := cfg.Window()
	if err != nil {
		cli.Fatal(logger, "Invalid calendar window", err)
	}
	window := calendar.Window{Min: lo, Max: hi}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	events, err := catalog.Load(ctx, catalog.Config{
		Source:       catalog.SourceType(cfg.EventsSource),
		EventsFile:   cfg.EventsFile,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		cli.Fatal(logger, "Failed to load event catalog", err)
	}
	index, err := calendar.NewEventIndex(events)
	if err != nil {
		cli.Fatal(logger, "Invalid event catalog", err)
	}

	gridLRU := cache.NewLRUCache[[]core.DayCell](cfg.GridCacheSize, cfg.GridCacheTTL)
	grid := cache.NewGridCache(calendar.IndexGrid{Index: index}, gridLRU)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Index:      index,
		Window:     window,
		Clock:      clock.NewSystem(),
		Grid:       grid,
		Logger:     logger,
		SessionTTL: cfg.SessionTTL,

		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		cli.Fatal(logger, "Failed to create HTTP server", err)
	}

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	caches := cache.NewManager(logger)
	caches.Register(gridLRU)
	caches.Register(srv.Sessions())
	caches.Register(srv.Limiter())
	if err := caches.StartCleanup(cfg.CacheCleanupSchedule); err != nil {
		cli.Fatal(logger, "Failed to schedule cache cleanup", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting atletica server",
			"port", cfg.Port,
			"events_source", cfg.EventsSource,
			"events", index.Len(),
			"window", lo.String()+".."+hi.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		caches.Stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		cli.Fatal(logger, "Server error", err)
	}
	hits, misses := gridLRU.Stats()
	logger.Info("Server stopped gracefully", "grid_cache_hits", hits, "grid_cache_misses", misses)
}
