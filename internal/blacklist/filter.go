package blacklist

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Filter answers "is this IP blacklisted?" with per-run memoization.
// Lookups for IPs not yet in the memo map go through the Resolver; any
// resolution failure, timeout, or empty PTR set is fail-open (the IP is
// reported as not blacklisted). Concurrent lookups of the same IP coalesce
// into one resolution, first writer wins.
type Filter struct {
	spec     *Spec
	resolver Resolver

	mu   sync.RWMutex
	seen map[string]bool

	group       singleflight.Group
	resolutions atomic.Int64
}

// NewFilter creates a Filter. A nil spec short-circuits: every IP is
// reported as not blacklisted and nothing is resolved or cached.
func NewFilter(spec *Spec, resolver Resolver) *Filter {
	return &Filter{
		spec:     spec,
		resolver: resolver,
		seen:     make(map[string]bool),
	}
}

// Enabled reports whether the filter has a blacklist to apply.
func (f *Filter) Enabled() bool {
	return f != nil && f.spec != nil
}

// Seed loads previously persisted outcomes into the memo map. Seeded IPs
// are never re-resolved during this run.
func (f *Filter) Seed(entries map[string]bool) {
	if !f.Enabled() || len(entries) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for ip, blacklisted := range entries {
		f.seen[ip] = blacklisted
	}
}

// Snapshot returns a copy of the memo map for persistence.
func (f *Filter) Snapshot() map[string]bool {
	if !f.Enabled() {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]bool, len(f.seen))
	for ip, blacklisted := range f.seen {
		out[ip] = blacklisted
	}
	return out
}

// Resolutions returns how many reverse-DNS lookups this run performed.
func (f *Filter) Resolutions() int64 {
	if f == nil {
		return 0
	}
	return f.resolutions.Load()
}

// Blacklisted reports whether ip is blacklisted, resolving and memoizing
// on first sight. The outcome for an IP is stable for the whole run.
func (f *Filter) Blacklisted(ctx context.Context, ip string) bool {
	if !f.Enabled() || ip == "" {
		return false
	}

	f.mu.RLock()
	cached, ok := f.seen[ip]
	f.mu.RUnlock()
	if ok {
		return cached
	}

	v, _, _ := f.group.Do(ip, func() (interface{}, error) {
		// Re-check: another goroutine may have finished between the
		// read above and entering the flight group.
		f.mu.RLock()
		cached, ok := f.seen[ip]
		f.mu.RUnlock()
		if ok {
			return cached, nil
		}

		blacklisted := f.resolve(ctx, ip)

		f.mu.Lock()
		f.seen[ip] = blacklisted
		f.mu.Unlock()
		return blacklisted, nil
	})
	return v.(bool)
}

// Prefetch resolves the given IPs concurrently with at most workers
// in-flight lookups, warming the memo map before the filtering pass.
func (f *Filter) Prefetch(ctx context.Context, ips []string, workers int) {
	if !f.Enabled() || len(ips) == 0 {
		return
	}
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, ip := range ips {
		g.Go(func() error {
			f.Blacklisted(gctx, ip)
			return nil
		})
	}
	_ = g.Wait()
}

func (f *Filter) resolve(ctx context.Context, ip string) bool {
	f.resolutions.Add(1)

	names, err := f.resolver.LookupAddr(ctx, ip)
	if err != nil {
		// Fail-open: DNS being unreachable must never drop traffic
		// from the report.
		log.Debug("reverse lookup failed", "ip", ip, "err", err)
		return false
	}
	for _, name := range names {
		if f.spec.Matches(name) {
			return true
		}
	}
	return false
}
