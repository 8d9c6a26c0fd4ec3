package repository

import (
	"context"
	"errors"

	"github.com/oasis/talentboard/internal/domain"
)

var ErrNotFound = errors.New("resource not found")

// Store abstracts job and application persistence so the in-memory map can be
// swapped for SQLite or Postgres without touching call sites.
type Store interface {
	// ListOpenJobs returns non-archived postings, newest first.
	ListOpenJobs(ctx context.Context) ([]domain.Job, error)
	GetJobBySlug(ctx context.Context, slug string) (*domain.Job, error)
	GetJobByTitleCompany(ctx context.Context, title, company string) (*domain.Job, error)
	// SeedJobs inserts the static catalog when the store holds no jobs yet.
	SeedJobs(ctx context.Context, jobs []domain.Job) error

	InsertApplication(ctx context.Context, application *domain.Application) error
	// GetApplicationByToken returns the application with its joined job summary.
	GetApplicationByToken(ctx context.Context, token string) (*domain.Application, *domain.JobSummary, error)
	// UpdateApplicationStatus mutates the single mutable field and returns the
	// durable application ID for the follow-up action append.
	UpdateApplicationStatus(ctx context.Context, token string, status domain.Status, reviewer string) (string, error)
	ListApplicants(ctx context.Context) ([]domain.ApplicantSummary, error)

	AppendAction(ctx context.Context, applicationID string, event domain.StatusEvent, reviewer string) error
	// ListActions returns the recorded action log in ascending time order.
	ListActions(ctx context.Context, applicationID string) ([]domain.StatusEvent, error)
}
