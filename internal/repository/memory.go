package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oasis/talentboard/internal/domain"
)

// MemoryStore keeps everything in process memory for local development and
// tests. Jobs keep their insertion order; newest postings are expected first.
type MemoryStore struct {
	mu           sync.RWMutex
	jobs         []domain.Job
	applications map[string]*domain.Application // keyed by tracker token
	byID         map[string]string              // application ID -> tracker token
	actions      map[string][]actionRow         // keyed by application ID
}

type actionRow struct {
	event    domain.StatusEvent
	reviewer string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		applications: make(map[string]*domain.Application),
		byID:         make(map[string]string),
		actions:      make(map[string][]actionRow),
	}
}

func (s *MemoryStore) ListOpenJobs(_ context.Context) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJobs(s.jobs), nil
}

func (s *MemoryStore) GetJobBySlug(_ context.Context, slug string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if job.Slug == slug || job.ID == slug {
			clone := cloneJob(job)
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetJobByTitleCompany(_ context.Context, title, company string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if strings.EqualFold(job.Title, title) && strings.EqualFold(job.Company, company) {
			clone := cloneJob(job)
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SeedJobs(_ context.Context, jobs []domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.jobs) > 0 {
		return nil
	}
	s.jobs = cloneJobs(jobs)
	return nil
}

func (s *MemoryStore) InsertApplication(_ context.Context, application *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *application
	s.applications[application.TrackerToken] = &clone
	s.byID[application.ID] = application.TrackerToken
	return nil
}

func (s *MemoryStore) GetApplicationByToken(_ context.Context, tokenValue string) (*domain.Application, *domain.JobSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	application, ok := s.applications[tokenValue]
	if !ok {
		return nil, nil, ErrNotFound
	}
	clone := *application
	summary := s.jobSummaryLocked(application.JobID)
	return &clone, summary, nil
}

func (s *MemoryStore) UpdateApplicationStatus(_ context.Context, tokenValue string, status domain.Status, reviewer string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.applications[tokenValue]
	if !ok {
		return "", ErrNotFound
	}
	application.Status = status
	application.UpdatedAt = time.Now().UTC()
	application.UpdatedBy = reviewer
	return application.ID, nil
}

func (s *MemoryStore) ListApplicants(_ context.Context) ([]domain.ApplicantSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.ApplicantSummary, 0, len(s.applications))
	for _, application := range s.applications {
		row := domain.ApplicantSummary{
			ApplicationID: application.ID,
			TrackerToken:  application.TrackerToken,
			JobID:         application.JobID,
			Name:          application.Name,
			Email:         application.Email,
			WorkAuth:      application.WorkAuth,
			Status:        application.Status,
			AppliedAt:     application.CreatedAt,
			Mode:          application.Mode,
			VideoPath:     application.VideoPath,
			TextResponse:  application.TextResponse,
			ResumePath:    application.ResumePath,
			JobTitle:      "Open role",
		}
		for _, job := range s.jobs {
			if job.ID == application.JobID {
				row.JobTitle = job.Title
				row.JobCompany = job.Company
				row.JobTags = append([]string(nil), job.Tags...)
				row.PromptTitle = job.Prompt.Title
				row.PromptBody = job.Prompt.Body
				break
			}
		}
		items = append(items, row)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].AppliedAt.After(items[j].AppliedAt)
	})
	return items, nil
}

func (s *MemoryStore) AppendAction(_ context.Context, applicationID string, event domain.StatusEvent, reviewer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[applicationID]; !ok {
		return ErrNotFound
	}
	s.actions[applicationID] = append(s.actions[applicationID], actionRow{event: event, reviewer: reviewer})
	return nil
}

func (s *MemoryStore) ListActions(_ context.Context, applicationID string) ([]domain.StatusEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.actions[applicationID]
	events := make([]domain.StatusEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.event)
	}
	return events, nil
}

func (s *MemoryStore) jobSummaryLocked(jobID string) *domain.JobSummary {
	for _, job := range s.jobs {
		if job.ID == jobID {
			return &domain.JobSummary{
				ID:       job.ID,
				Title:    job.Title,
				Company:  job.Company,
				Location: job.Location,
			}
		}
	}
	return &domain.JobSummary{ID: jobID, Title: "Role"}
}

func cloneJobs(jobs []domain.Job) []domain.Job {
	cloned := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		cloned = append(cloned, cloneJob(job))
	}
	return cloned
}

func cloneJob(job domain.Job) domain.Job {
	clone := job
	clone.Niche = append([]string(nil), job.Niche...)
	clone.Tags = append([]string(nil), job.Tags...)
	clone.TrendingRegions = append([]string(nil), job.TrendingRegions...)
	clone.Keywords = append([]string(nil), job.Keywords...)
	return clone
}
