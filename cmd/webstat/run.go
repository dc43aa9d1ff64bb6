package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/webstat/internal/accesslog"
	"github.com/tinytelemetry/webstat/internal/blacklist"
	"github.com/tinytelemetry/webstat/internal/cachestore"
	"github.com/tinytelemetry/webstat/internal/httpserver"
	"github.com/tinytelemetry/webstat/internal/logsource"
	"github.com/tinytelemetry/webstat/internal/model"
	"github.com/tinytelemetry/webstat/internal/report"
)

// run executes one analysis pipeline: read lines, extract records, apply
// the blacklist filter, then either print the ranked report or serve it.
func run(cfg appConfig, mode report.Mode, path string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	records, err := readRecords(ctx, cfg, path)
	if err != nil {
		return err
	}

	records, err = applyBlacklist(ctx, cfg, records)
	if err != nil {
		return err
	}

	analysis := report.NewAnalysis(records)

	if cfg.Serve {
		return serveReports(ctx, cfg, analysis)
	}

	rows := analysis.Report(mode, cfg.Limit)
	return report.Write(os.Stdout, mode, rows)
}

// readRecords drains the line source and extracts one record per line.
func readRecords(ctx context.Context, cfg appConfig, path string) ([]model.Record, error) {
	var src logsource.LogSource
	if path == "" {
		src = logsource.NewStdinSource(ctx, logsource.StdinConfig{MaxLineSize: cfg.MaxLineSize})
	} else {
		fileSrc, err := logsource.NewFileSource(ctx, path, logsource.FileConfig{MaxLineSize: cfg.MaxLineSize})
		if err != nil {
			return nil, err
		}
		src = fileSrc
	}
	defer src.Stop()

	var records []model.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case env, ok := <-src.Lines():
				if !ok {
					return nil
				}
				records = append(records, accesslog.Extract(env.Line))
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// applyBlacklist resolves and filters blacklisted IPs. With no blacklist
// configured it returns the records untouched and touches no cache.
func applyBlacklist(ctx context.Context, cfg appConfig, records []model.Record) ([]model.Record, error) {
	spec, err := blacklist.LoadSpec(cfg.Blacklist)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return records, nil
	}

	var resolver blacklist.Resolver
	if cfg.DNSServer != "" {
		resolver = blacklist.NewDirectResolver(cfg.DNSServer, cfg.DNSTimeout)
	} else {
		resolver = blacklist.SystemResolver{Timeout: cfg.DNSTimeout}
	}
	filter := blacklist.NewFilter(spec, resolver)

	// The cache is best-effort: a broken store degrades to a cold run.
	store, err := cachestore.NewStore(cfg.CachePath, cfg.SaveTimeout)
	if err != nil {
		log.Warn("resolver cache unavailable, starting cold", "path", cfg.CachePath, "err", err)
	} else {
		defer store.Close()
		entries, err := store.Load(spec.Hash())
		if err != nil {
			log.Warn("resolver cache load failed, starting cold", "err", err)
		} else {
			filter.Seed(entries)
		}
	}

	filter.Prefetch(ctx, distinctIPs(records), cfg.ResolveWorkers)

	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		if filter.Blacklisted(ctx, r.IP) {
			continue
		}
		kept = append(kept, r)
	}

	// Snapshot write is unconditional on a completed filter pass; a save
	// failure is reported but the report has already been computed.
	if store != nil {
		if err := store.Save(spec.Hash(), filter.Snapshot()); err != nil {
			log.Error("resolver cache save failed", "err", err)
		}
	}

	log.Debug("blacklist applied",
		"entries", spec.Len(),
		"resolutions", filter.Resolutions(),
		"kept", len(kept),
		"dropped", len(records)-len(kept))
	return kept, nil
}

// distinctIPs returns the unique non-empty IPs in input order.
func distinctIPs(records []model.Record) []string {
	seen := make(map[string]bool, len(records))
	ips := make([]string, 0, len(records))
	for _, r := range records {
		if r.IP == "" || seen[r.IP] {
			continue
		}
		seen[r.IP] = true
		ips = append(ips, r.IP)
	}
	return ips
}

// serveReports keeps the analysis available over the HTTP API until the
// process is signalled.
func serveReports(ctx context.Context, cfg appConfig, analysis *report.Analysis) error {
	srv := httpserver.NewServer(cfg.APIAddr, analysis)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	fmt.Printf("webstat: serving reports on http://%s (Ctrl+C to stop)\n", srv.Addr())

	<-ctx.Done()
	return srv.Stop()
}
