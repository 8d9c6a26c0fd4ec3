// Package catalog owns the in-memory job list served to the board. The list
// is replaced wholesale on refresh so readers always see a consistent set.
package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
)

// Source is the remote read of non-archived postings, newest first.
type Source interface {
	ListOpenJobs(ctx context.Context) ([]domain.Job, error)
}

// SnapshotCache holds the last good catalog across store outages.
type SnapshotCache interface {
	Put(ctx context.Context, jobs []domain.Job)
	Get(ctx context.Context) ([]domain.Job, bool)
}

type Catalog struct {
	source   Source
	cache    SnapshotCache // optional
	logger   *zap.Logger
	interval time.Duration

	mu   sync.RWMutex
	jobs []domain.Job
}

// New builds a catalog primed with the static seed so the board is never
// empty before the first refresh completes.
func New(source Source, cache SnapshotCache, interval time.Duration, logger *zap.Logger) *Catalog {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Catalog{
		source:   source,
		cache:    cache,
		logger:   logger,
		interval: interval,
		jobs:     SeedJobs(),
	}
}

// Snapshot returns the current job list. Callers own the returned slice.
func (c *Catalog) Snapshot() []domain.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Job(nil), c.jobs...)
}

// Refresh pulls the freshest catalog. A failed or empty remote read falls
// back to the cached snapshot; with neither available the current list stays.
func (c *Catalog) Refresh(ctx context.Context) {
	jobs, err := c.source.ListOpenJobs(ctx)
	if err == nil && len(jobs) > 0 {
		c.replace(ctx, jobs)
		if c.cache != nil {
			c.cache.Put(ctx, jobs)
		}
		return
	}
	if err != nil {
		c.logger.Warn("catalog refresh failed", zap.Error(err))
	}
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx); ok {
			c.replace(ctx, cached)
			return
		}
	}
	c.logger.Debug("keeping current catalog snapshot",
		zap.Int("jobs", len(c.Snapshot())),
	)
}

// Start runs the refresh loop: once immediately, then on the interval, until
// the context is torn down.
func (c *Catalog) Start(ctx context.Context) {
	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("catalog refresher stopped")
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

func (c *Catalog) replace(ctx context.Context, jobs []domain.Job) {
	// A refresh finishing after teardown must not publish.
	if ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.jobs = append([]domain.Job(nil), jobs...)
	c.mu.Unlock()
}
