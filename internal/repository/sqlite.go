package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oasis/talentboard/internal/domain"
)

// SQLiteStore is the single-binary deployment option: a local file, schema
// created on open. String lists are stored as JSON text columns.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  timeline TEXT NOT NULL DEFAULT '',
  domain TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT '',
  niche TEXT NOT NULL DEFAULT '[]',
  snapshot TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  icon_key TEXT NOT NULL DEFAULT 'technology',
  prompt_title TEXT NOT NULL DEFAULT '',
  prompt_body TEXT NOT NULL DEFAULT '',
  posted_ago TEXT NOT NULL DEFAULT 'Trending',
  tenure INTEGER NOT NULL DEFAULT 0,
  trending_regions TEXT NOT NULL DEFAULT '[]',
  keywords TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL DEFAULT 'open',
  created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  job_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  age INTEGER NOT NULL DEFAULT 0,
  work_auth TEXT NOT NULL DEFAULT '',
  consent INTEGER NOT NULL DEFAULT 0,
  consent_at INTEGER NOT NULL,
  consent_ip TEXT NOT NULL DEFAULT '',
  tracker_token TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL,
  submission_mode TEXT NOT NULL,
  video_url TEXT NOT NULL DEFAULT '',
  text_response TEXT NOT NULL DEFAULT '',
  resume_url TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL,
  updated_by TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS actions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  application_id TEXT NOT NULL,
  action_type TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  hr_email TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) ListOpenJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sqliteJobColumns+`
		FROM jobs
		WHERE status != 'archived'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanSQLiteJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const sqliteJobColumns = `id, slug, title, company, location, timeline, domain, role, niche,
	snapshot, tags, icon_key, prompt_title, prompt_body, posted_ago, tenure,
	trending_regions, keywords`

func (s *SQLiteStore) GetJobBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sqliteJobColumns+`
		FROM jobs
		WHERE slug = ? OR id = ?
		LIMIT 1
	`, slug, slug)
	job, err := scanSQLiteJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *SQLiteStore) GetJobByTitleCompany(ctx context.Context, title, company string) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sqliteJobColumns+`
		FROM jobs
		WHERE lower(title) = lower(?) AND lower(company) = lower(?)
		LIMIT 1
	`, title, company)
	job, err := scanSQLiteJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *SQLiteStore) SeedJobs(ctx context.Context, jobs []domain.Job) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM jobs`).Scan(&count); err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	for index, job := range jobs {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO jobs (
				id, slug, title, company, location, timeline, domain, role, niche,
				snapshot, tags, icon_key, prompt_title, prompt_body, posted_ago,
				tenure, trending_regions, keywords, status, created_at
			) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,'open',?)
		`,
			job.ID,
			job.Slug,
			job.Title,
			job.Company,
			job.Location,
			job.Timeline,
			job.Domain,
			job.Role,
			marshalList(job.Niche),
			job.Snapshot,
			marshalList(job.Tags),
			job.IconKey,
			job.Prompt.Title,
			job.Prompt.Body,
			job.PostedAgo,
			job.Tenure,
			marshalList(job.TrendingRegions),
			marshalList(job.Keywords),
			// Preserve catalog order under the newest-first read.
			now-int64(index),
		)
		if err != nil {
			return fmt.Errorf("seed job %s: %w", job.Slug, err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertApplication(ctx context.Context, application *domain.Application) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, job_id, name, email, age, work_auth, consent, consent_at,
			consent_ip, tracker_token, status, submission_mode, video_url,
			text_response, resume_url, created_at, updated_at, updated_by
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		application.ID,
		application.JobID,
		application.Name,
		application.Email,
		application.Age,
		application.WorkAuth,
		boolToInt(application.Consent),
		application.ConsentAt.UnixMilli(),
		application.ConsentIP,
		application.TrackerToken,
		string(application.Status),
		string(application.Mode),
		application.VideoPath,
		application.TextResponse,
		application.ResumePath,
		application.CreatedAt.UnixMilli(),
		application.UpdatedAt.UnixMilli(),
		application.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetApplicationByToken(ctx context.Context, tokenValue string) (*domain.Application, *domain.JobSummary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.job_id, a.name, a.email, a.age, a.work_auth, a.consent,
			a.consent_at, a.consent_ip, a.tracker_token, a.status,
			a.submission_mode, a.video_url, a.text_response, a.resume_url,
			a.created_at, a.updated_at, a.updated_by,
			j.id, j.title, j.company, j.location
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.tracker_token = ?
	`, tokenValue)

	var (
		application domain.Application
		summary     domain.JobSummary
		consent     int
		consentMs   int64
		createdMs   int64
		updatedMs   int64
		status      string
		mode        string
	)
	err := row.Scan(
		&application.ID,
		&application.JobID,
		&application.Name,
		&application.Email,
		&application.Age,
		&application.WorkAuth,
		&consent,
		&consentMs,
		&application.ConsentIP,
		&application.TrackerToken,
		&status,
		&mode,
		&application.VideoPath,
		&application.TextResponse,
		&application.ResumePath,
		&createdMs,
		&updatedMs,
		&application.UpdatedBy,
		&summary.ID,
		&summary.Title,
		&summary.Company,
		&summary.Location,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("query application: %w", err)
	}
	application.Consent = consent != 0
	application.ConsentAt = time.UnixMilli(consentMs).UTC()
	application.CreatedAt = time.UnixMilli(createdMs).UTC()
	application.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	application.Status = domain.Status(status)
	application.Mode = domain.SubmissionMode(mode)
	return &application, &summary, nil
}

func (s *SQLiteStore) UpdateApplicationStatus(ctx context.Context, tokenValue string, status domain.Status, reviewer string) (string, error) {
	var applicationID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM applications WHERE tracker_token = ?`, tokenValue,
	).Scan(&applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("lookup application: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE applications
		SET status = ?, updated_at = ?, updated_by = ?
		WHERE id = ?
	`, string(status), time.Now().UnixMilli(), reviewer, applicationID)
	if err != nil {
		return "", fmt.Errorf("update application status: %w", err)
	}
	return applicationID, nil
}

func (s *SQLiteStore) ListApplicants(ctx context.Context) ([]domain.ApplicantSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
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
			item      domain.ApplicantSummary
			status    string
			mode      string
			createdMs int64
			tags      string
		)
		err := rows.Scan(
			&item.ApplicationID,
			&item.TrackerToken,
			&item.JobID,
			&item.Name,
			&item.Email,
			&item.WorkAuth,
			&status,
			&createdMs,
			&mode,
			&item.VideoPath,
			&item.TextResponse,
			&item.ResumePath,
			&item.JobTitle,
			&item.JobCompany,
			&tags,
			&item.PromptTitle,
			&item.PromptBody,
		)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		item.Status = domain.Status(status)
		item.Mode = domain.SubmissionMode(mode)
		item.AppliedAt = time.UnixMilli(createdMs).UTC()
		item.JobTags = unmarshalList(tags)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) AppendAction(ctx context.Context, applicationID string, event domain.StatusEvent, reviewer string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actions (application_id, action_type, note, hr_email, created_at)
		VALUES (?,?,?,?,?)
	`, applicationID, string(event.Status), event.Note, reviewer, event.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListActions(ctx context.Context, applicationID string) ([]domain.StatusEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action_type, note, created_at
		FROM actions
		WHERE application_id = ?
		ORDER BY created_at ASC, id ASC
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	events := make([]domain.StatusEvent, 0)
	for rows.Next() {
		var (
			event     domain.StatusEvent
			status    string
			createdMs int64
		)
		if err := rows.Scan(&status, &event.Note, &createdMs); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		event.Status = domain.Status(status)
		event.Timestamp = time.UnixMilli(createdMs).UTC()
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanSQLiteJob(scan func(dest ...any) error) (domain.Job, error) {
	var (
		job             domain.Job
		niche           string
		tags            string
		trendingRegions string
		keywords        string
	)
	err := scan(
		&job.ID,
		&job.Slug,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Timeline,
		&job.Domain,
		&job.Role,
		&niche,
		&job.Snapshot,
		&tags,
		&job.IconKey,
		&job.Prompt.Title,
		&job.Prompt.Body,
		&job.PostedAgo,
		&job.Tenure,
		&trendingRegions,
		&keywords,
	)
	if err != nil {
		return domain.Job{}, err
	}
	job.Niche = unmarshalList(niche)
	job.Tags = unmarshalList(tags)
	job.TrendingRegions = unmarshalList(trendingRegions)
	job.Keywords = unmarshalList(keywords)
	return job, nil
}

func marshalList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	encoded, _ := json.Marshal(values)
	return string(encoded)
}

func unmarshalList(raw string) []string {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
