package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oasis/talentboard/internal/domain"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	jobs := []domain.Job{
		{ID: "job-a", Slug: "job-a", Title: "Roaster", Company: "Beans Co"},
		{ID: "job-b", Slug: "job-b", Title: "Driver", Company: "Swift"},
	}
	if err := store.SeedJobs(context.Background(), jobs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestMemoryStoreSeedIsIdempotent(t *testing.T) {
	store := seededStore(t)
	if err := store.SeedJobs(context.Background(), []domain.Job{{ID: "job-c"}}); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	jobs, _ := store.ListOpenJobs(context.Background())
	if len(jobs) != 2 {
		t.Fatalf("seed must not run on a non-empty store, got %d jobs", len(jobs))
	}
}

func TestMemoryStoreJobLookups(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	if job, err := store.GetJobBySlug(ctx, "job-b"); err != nil || job.Title != "Driver" {
		t.Fatalf("slug lookup failed: %v %+v", err, job)
	}
	if job, err := store.GetJobByTitleCompany(ctx, "roaster", "BEANS CO"); err != nil || job.ID != "job-a" {
		t.Fatalf("title+company lookup must be case-insensitive: %v %+v", err, job)
	}
	if _, err := store.GetJobBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreApplicationLifecycle(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	application := &domain.Application{
		ID:           "app-1",
		JobID:        "job-a",
		Name:         "Aisha Bloom",
		Email:        "aisha@candidate.com",
		TrackerToken: "tok-1",
		Status:       domain.StatusDelivered,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertApplication(ctx, application); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, summary, err := store.GetApplicationByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Aisha Bloom" || summary.Title != "Roaster" {
		t.Fatalf("unexpected read: %+v / %+v", got, summary)
	}

	applicationID, err := store.UpdateApplicationStatus(ctx, "tok-1", domain.StatusUnderReview, "hr@oasis.com")
	if err != nil || applicationID != "app-1" {
		t.Fatalf("update status: %v %q", err, applicationID)
	}

	event := domain.StatusEvent{Status: domain.StatusUnderReview, Note: "reviewing", Timestamp: time.Now().UTC()}
	if err := store.AppendAction(ctx, applicationID, event, "hr@oasis.com"); err != nil {
		t.Fatalf("append action: %v", err)
	}
	actions, err := store.ListActions(ctx, applicationID)
	if err != nil || len(actions) != 1 || actions[0].Note != "reviewing" {
		t.Fatalf("list actions: %v %+v", err, actions)
	}

	applicants, err := store.ListApplicants(ctx)
	if err != nil || len(applicants) != 1 || applicants[0].Status != domain.StatusUnderReview {
		t.Fatalf("list applicants: %v %+v", err, applicants)
	}
}
