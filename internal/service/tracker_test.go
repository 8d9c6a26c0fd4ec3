package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/catalog"
	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
)

func newTrackerFixture(t *testing.T) (*TrackerService, *repository.MemoryStore, *fakeNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := store.SeedJobs(context.Background(), catalog.SeedJobs()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	notifier := &fakeNotifier{}
	svc := NewTrackerService(store, notifier, "", zap.NewNop())
	return svc, store, notifier
}

func insertApplication(t *testing.T, store *repository.MemoryStore, trackerToken string) {
	t.Helper()
	err := store.InsertApplication(context.Background(), &domain.Application{
		ID:           "app-" + trackerToken,
		JobID:        "job-driver",
		Name:         "Morgan Lee",
		Email:        "morgan@candidate.com",
		TrackerToken: trackerToken,
		Status:       domain.StatusDelivered,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("insert application: %v", err)
	}
}

func TestSnapshotSynthesizesDeliveredEntry(t *testing.T) {
	svc, store, _ := newTrackerFixture(t)
	insertApplication(t, store, "tok-1")

	view, err := svc.Snapshot(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(view.Timeline) != 1 {
		t.Fatalf("expected the single synthesized entry, got %d", len(view.Timeline))
	}
	if view.Timeline[0].Status != domain.StatusDelivered {
		t.Fatalf("first entry must be Delivered, got %q", view.Timeline[0].Status)
	}
	if view.Timeline[0].Note != "Confirmation email sent" {
		t.Fatalf("unexpected synthesized note %q", view.Timeline[0].Note)
	}
	if view.Job.Title != "Fleet Driver" {
		t.Fatalf("expected joined job summary, got %+v", view.Job)
	}
}

func TestSnapshotUnknownTokenReturnsNotFound(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)
	if _, err := svc.Snapshot(context.Background(), "tok-missing"); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSnapshotFallsBackToStoredStatusWithoutActions(t *testing.T) {
	svc, store, _ := newTrackerFixture(t)
	insertApplication(t, store, "tok-2")

	// Status moved without a recorded action, e.g. a legacy write.
	if _, err := store.UpdateApplicationStatus(context.Background(), "tok-2", domain.StatusUnderReview, "hr@oasis.com"); err != nil {
		t.Fatalf("update: %v", err)
	}

	view, err := svc.Snapshot(context.Background(), "tok-2")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(view.Timeline) != 2 {
		t.Fatalf("expected synthesized entry + stored status, got %d", len(view.Timeline))
	}
	if view.Timeline[1].Status != domain.StatusUnderReview {
		t.Fatalf("expected stored status entry, got %q", view.Timeline[1].Status)
	}
}

func TestAdvanceAppendsOrderedTimeline(t *testing.T) {
	svc, store, notifier := newTrackerFixture(t)
	insertApplication(t, store, "tok-3")
	ctx := context.Background()

	steps := []domain.Status{domain.StatusUnderReview, domain.StatusInterview, domain.StatusOutcomePending}
	for _, step := range steps {
		if err := svc.Advance(ctx, "tok-3", step, ""); err != nil {
			t.Fatalf("advance to %q: %v", step, err)
		}
	}

	view, err := svc.Snapshot(ctx, "tok-3")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(view.Timeline) != 4 {
		t.Fatalf("expected 4 entries including synthesized Delivered, got %d", len(view.Timeline))
	}
	want := []domain.Status{domain.StatusDelivered, domain.StatusUnderReview, domain.StatusInterview, domain.StatusOutcomePending}
	for index, entry := range view.Timeline {
		if entry.Status != want[index] {
			t.Fatalf("entry %d: got %q, want %q", index, entry.Status, want[index])
		}
		if index > 0 && entry.Timestamp.Before(view.Timeline[index-1].Timestamp) {
			t.Fatalf("timeline timestamps must be non-decreasing")
		}
	}
	if len(notifier.statusUpdates) != 3 {
		t.Fatalf("expected 3 status notifications, got %d", len(notifier.statusUpdates))
	}
}

func TestAdvanceUsesDefaultClassificationNote(t *testing.T) {
	svc, store, _ := newTrackerFixture(t)
	insertApplication(t, store, "tok-4")
	ctx := context.Background()

	if err := svc.Advance(ctx, "tok-4", domain.StatusUnderReview, ""); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := svc.Advance(ctx, "tok-4", domain.StatusInterview, "panel booked for Tuesday"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	actions, err := store.ListActions(ctx, "app-tok-4")
	if err != nil {
		t.Fatalf("actions: %v", err)
	}
	if actions[0].Note != "reviewing" {
		t.Fatalf("expected default note, got %q", actions[0].Note)
	}
	if actions[1].Note != "panel booked for Tuesday" {
		t.Fatalf("explicit note must win, got %q", actions[1].Note)
	}
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	svc, store, _ := newTrackerFixture(t)
	insertApplication(t, store, "tok-5")

	err := svc.Advance(context.Background(), "tok-5", domain.Status("On Hold Forever"), "")
	if !IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestAdvanceUnknownTokenReturnsNotFound(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)
	err := svc.Advance(context.Background(), "tok-missing", domain.StatusUnderReview, "")
	if err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
