package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
)

type fakeSource struct {
	jobs []domain.Job
	err  error
}

func (f *fakeSource) ListOpenJobs(context.Context) ([]domain.Job, error) {
	return f.jobs, f.err
}

type fakeCache struct {
	stored []domain.Job
}

func (f *fakeCache) Put(_ context.Context, jobs []domain.Job) { f.stored = jobs }
func (f *fakeCache) Get(context.Context) ([]domain.Job, bool) {
	return f.stored, len(f.stored) > 0
}

func TestCatalogStartsWithSeed(t *testing.T) {
	c := New(&fakeSource{}, nil, time.Minute, zap.NewNop())
	snapshot := c.Snapshot()
	if len(snapshot) != len(SeedJobs()) {
		t.Fatalf("expected seed catalog before first refresh, got %d jobs", len(snapshot))
	}
}

func TestRefreshReplacesWholesaleAndFillsCache(t *testing.T) {
	remote := []domain.Job{{ID: "fresh-1"}, {ID: "fresh-2"}}
	cache := &fakeCache{}
	c := New(&fakeSource{jobs: remote}, cache, time.Minute, zap.NewNop())

	c.Refresh(context.Background())

	snapshot := c.Snapshot()
	if len(snapshot) != 2 || snapshot[0].ID != "fresh-1" {
		t.Fatalf("expected remote catalog, got %+v", snapshot)
	}
	if len(cache.stored) != 2 {
		t.Fatalf("expected cache fill, got %d", len(cache.stored))
	}
}

func TestRefreshFallsBackToCacheThenKeepsCurrent(t *testing.T) {
	source := &fakeSource{err: errors.New("store down")}
	cache := &fakeCache{stored: []domain.Job{{ID: "cached"}}}
	c := New(source, cache, time.Minute, zap.NewNop())

	c.Refresh(context.Background())
	if snapshot := c.Snapshot(); len(snapshot) != 1 || snapshot[0].ID != "cached" {
		t.Fatalf("expected cached catalog, got %+v", snapshot)
	}

	// Cache also empty: the last published snapshot stays put.
	cache.stored = nil
	c.Refresh(context.Background())
	if snapshot := c.Snapshot(); len(snapshot) != 1 || snapshot[0].ID != "cached" {
		t.Fatalf("expected sticky snapshot, got %+v", snapshot)
	}
}

func TestRefreshIgnoresEmptyRemote(t *testing.T) {
	c := New(&fakeSource{jobs: nil}, nil, time.Minute, zap.NewNop())
	c.Refresh(context.Background())
	if len(c.Snapshot()) != len(SeedJobs()) {
		t.Fatalf("an empty remote set must not clear the catalog")
	}
}

func TestRefreshAfterTeardownIsNoOp(t *testing.T) {
	c := New(&fakeSource{jobs: []domain.Job{{ID: "late"}}}, nil, time.Minute, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Refresh(ctx)
	if snapshot := c.Snapshot(); len(snapshot) > 0 && snapshot[0].ID == "late" {
		t.Fatalf("cancelled refresh must not publish")
	}
}
