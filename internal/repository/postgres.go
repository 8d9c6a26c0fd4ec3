package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oasis/talentboard/internal/domain"
)

// PostgresStore persists jobs, applications and the action log in Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

const jobColumns = `id, slug, title, company, location, timeline, domain, role, niche,
	snapshot, tags, icon_key, prompt_title, prompt_body, posted_ago, tenure,
	trending_regions, keywords`

func (s *PostgresStore) ListOpenJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE status IS DISTINCT FROM 'archived'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) GetJobBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE slug = $1 OR id = $1
		LIMIT 1
	`, slug)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *PostgresStore) GetJobByTitleCompany(ctx context.Context, title, company string) (*domain.Job, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE lower(title) = lower($1) AND lower(company) = lower($2)
		LIMIT 1
	`, title, company)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *PostgresStore) SeedJobs(ctx context.Context, jobs []domain.Job) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&count); err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, job := range jobs {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO jobs (
				id, slug, title, company, location, timeline, domain, role, niche,
				snapshot, tags, icon_key, prompt_title, prompt_body, posted_ago,
				tenure, trending_regions, keywords, status, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,'open',now())
		`,
			job.ID,
			job.Slug,
			job.Title,
			job.Company,
			job.Location,
			job.Timeline,
			job.Domain,
			job.Role,
			job.Niche,
			job.Snapshot,
			job.Tags,
			job.IconKey,
			job.Prompt.Title,
			job.Prompt.Body,
			job.PostedAgo,
			job.Tenure,
			job.TrendingRegions,
			job.Keywords,
		)
		if err != nil {
			return fmt.Errorf("seed job %s: %w", job.Slug, err)
		}
	}
	return nil
}

func (s *PostgresStore) InsertApplication(ctx context.Context, application *domain.Application) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO applications (
			id, job_id, name, email, age, work_auth, consent, consent_at,
			consent_ip, tracker_token, status, submission_mode, video_url,
			text_response, resume_url, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		application.ID,
		application.JobID,
		application.Name,
		application.Email,
		application.Age,
		application.WorkAuth,
		application.Consent,
		application.ConsentAt,
		application.ConsentIP,
		application.TrackerToken,
		string(application.Status),
		string(application.Mode),
		application.VideoPath,
		application.TextResponse,
		application.ResumePath,
		application.CreatedAt,
		application.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetApplicationByToken(ctx context.Context, tokenValue string) (*domain.Application, *domain.JobSummary, error) {
	var (
		application domain.Application
		status      string
		mode        string
		summary     domain.JobSummary
	)
	err := s.pool.QueryRow(ctx, `
		SELECT a.id, a.job_id, a.name, a.email, a.age, a.work_auth, a.consent,
			a.consent_at, a.consent_ip, a.tracker_token, a.status,
			a.submission_mode, a.video_url, a.text_response, a.resume_url,
			a.created_at, a.updated_at, a.updated_by,
			j.id, j.title, j.company, j.location
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.tracker_token = $1
	`, tokenValue).Scan(
		&application.ID,
		&application.JobID,
		&application.Name,
		&application.Email,
		&application.Age,
		&application.WorkAuth,
		&application.Consent,
		&application.ConsentAt,
		&application.ConsentIP,
		&application.TrackerToken,
		&status,
		&mode,
		&application.VideoPath,
		&application.TextResponse,
		&application.ResumePath,
		&application.CreatedAt,
		&application.UpdatedAt,
		&application.UpdatedBy,
		&summary.ID,
		&summary.Title,
		&summary.Company,
		&summary.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("query application: %w", err)
	}
	application.Status = domain.Status(status)
	application.Mode = domain.SubmissionMode(mode)
	return &application, &summary, nil
}

func (s *PostgresStore) UpdateApplicationStatus(ctx context.Context, tokenValue string, status domain.Status, reviewer string) (string, error) {
	var applicationID string
	err := s.pool.QueryRow(ctx, `
		UPDATE applications
		SET status = $2, updated_at = $3, updated_by = $4
		WHERE tracker_token = $1
		RETURNING id
	`, tokenValue, string(status), time.Now().UTC(), reviewer).Scan(&applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("update application status: %w", err)
	}
	return applicationID, nil
}

func (s *PostgresStore) ListApplicants(ctx context.Context) ([]domain.ApplicantSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.tracker_token, a.job_id, a.name, a.email, a.work_auth,
			a.status, a.created_at, a.submission_mode, a.video_url,
			a.text_response, a.resume_url,
			j.title, j.company, j.tags, j.prompt_title, j.prompt_body
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query applicants: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ApplicantSummary, 0)
	for rows.Next() {
		var (
			item   domain.ApplicantSummary
			status string
			mode   string
		)
		err := rows.Scan(
			&item.ApplicationID,
			&item.TrackerToken,
			&item.JobID,
			&item.Name,
			&item.Email,
			&item.WorkAuth,
			&status,
			&item.AppliedAt,
			&mode,
			&item.VideoPath,
			&item.TextResponse,
			&item.ResumePath,
			&item.JobTitle,
			&item.JobCompany,
			&item.JobTags,
			&item.PromptTitle,
			&item.PromptBody,
		)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		item.Status = domain.Status(status)
		item.Mode = domain.SubmissionMode(mode)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) AppendAction(ctx context.Context, applicationID string, event domain.StatusEvent, reviewer string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO actions (application_id, action_type, note, hr_email, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, applicationID, string(event.Status), event.Note, reviewer, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListActions(ctx context.Context, applicationID string) ([]domain.StatusEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT action_type, note, created_at
		FROM actions
		WHERE application_id = $1
		ORDER BY created_at ASC
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	events := make([]domain.StatusEvent, 0)
	for rows.Next() {
		var (
			event  domain.StatusEvent
			status string
		)
		if err := rows.Scan(&status, &event.Note, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		event.Status = domain.Status(status)
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID,
		&job.Slug,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Timeline,
		&job.Domain,
		&job.Role,
		&job.Niche,
		&job.Snapshot,
		&job.Tags,
		&job.IconKey,
		&job.Prompt.Title,
		&job.Prompt.Body,
		&job.PostedAgo,
		&job.Tenure,
		&job.TrendingRegions,
		&job.Keywords,
	)
	if err != nil {
		return domain.Job{}, err
	}
	return job, nil
}
