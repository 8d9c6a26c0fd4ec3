package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/blob"
	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/token"
)

const minTextResponseLength = 20

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Notifier is the fire-and-forget outbound hook. Implementations must never
// block or fail the caller.
type Notifier interface {
	ApplicationCreated(payload any)
	StatusUpdated(trackerToken string, status string)
}

// Upload is an in-memory asset attached to a submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// JobRef identifies the posting being applied to. Display layers may only
// hold a slug or title+company; Submit resolves the durable ID.
type JobRef struct {
	ID      string
	Slug    string
	Title   string
	Company string
}

// SubmissionPayload carries everything the candidate entered.
type SubmissionPayload struct {
	Name         string
	Email        string
	Age          string
	WorkAuth     string
	Consent      bool
	ConsentIP    string
	Mode         domain.SubmissionMode
	Video        *Upload
	TextResponse string
	Resume       *Upload
}

// SubmissionResult is returned on success so the caller can build the
// tracker link.
type SubmissionResult struct {
	TrackerToken string `json:"tracker_token"`
	TrackerURL   string `json:"tracker_url"`
	Message      string `json:"message"`
}

// SubmissionService validates multi-modal applications, persists their
// assets and creates the durable application record.
type SubmissionService struct {
	store   repository.Store
	blobs   blob.Store
	webhook Notifier
	logger  *zap.Logger
	origin  string
}

func NewSubmissionService(
	store repository.Store,
	blobs blob.Store,
	webhook Notifier,
	origin string,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		store:   store,
		blobs:   blobs,
		webhook: webhook,
		logger:  logger,
		origin:  strings.TrimRight(origin, "/"),
	}
}

// Submit runs the full pipeline. Each step short-circuits the remainder on
// failure; the application record is only created once every asset upload
// completed, so no record ever references a missing asset.
func (s *SubmissionService) Submit(ctx context.Context, ref JobRef, payload SubmissionPayload) (*SubmissionResult, error) {
	age, err := validatePayload(payload)
	if err != nil {
		return nil, err
	}

	trackerToken := token.Generate()
	now := time.Now().UTC()

	jobID, err := s.resolveJobID(ctx, ref)
	if err != nil {
		return nil, err
	}

	videoPath := ""
	if payload.Mode != domain.ModeText {
		videoPath, err = s.persistVideo(ctx, trackerToken, payload.Video, now)
		if err != nil {
			return nil, err
		}
	}

	resumePath := ""
	if payload.Resume != nil {
		resumePath, err = s.persistResume(ctx, trackerToken, payload.Resume, now)
		if err != nil {
			return nil, err
		}
	}

	application := &domain.Application{
		ID:           uuid.NewString(),
		JobID:        jobID,
		Name:         payload.Name,
		Email:        payload.Email,
		Age:          age,
		WorkAuth:     payload.WorkAuth,
		Consent:      payload.Consent,
		ConsentAt:    now,
		ConsentIP:    payload.ConsentIP,
		TrackerToken: trackerToken,
		Status:       domain.StatusDelivered,
		Mode:         payload.Mode,
		VideoPath:    videoPath,
		TextResponse: strings.TrimSpace(payload.TextResponse),
		ResumePath:   resumePath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertApplication(ctx, application); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.webhook.ApplicationCreated(map[string]any{
		"job_id":          jobID,
		"name":            application.Name,
		"email":           application.Email,
		"age":             application.Age,
		"work_auth":       application.WorkAuth,
		"consent":         application.Consent,
		"consent_at":      application.ConsentAt,
		"tracker_token":   trackerToken,
		"status":          string(application.Status),
		"submission_mode": string(application.Mode),
		"video_url":       videoPath,
		"text_response":   application.TextResponse,
		"resume_url":      resumePath,
	})

	s.logger.Info("application submitted",
		zap.String("job_id", jobID),
		zap.String("token_prefix", token.ToID(trackerToken)),
		zap.String("mode", string(application.Mode)),
	)

	return &SubmissionResult{
		TrackerToken: trackerToken,
		TrackerURL:   s.origin + "/tracker?token=" + trackerToken,
		Message:      "Your application was submitted. Check your email within the next 5 minutes for confirmation.",
	}, nil
}

func validatePayload(payload SubmissionPayload) (int, error) {
	if strings.TrimSpace(payload.Name) == "" {
		return 0, validationErr("name is required")
	}
	if strings.TrimSpace(payload.Email) == "" {
		return 0, validationErr("email is required")
	}
	if strings.TrimSpace(payload.Age) == "" {
		return 0, validationErr("age is required")
	}
	age, err := strconv.Atoi(strings.TrimSpace(payload.Age))
	if err != nil || age <= 0 {
		return 0, validationErr("age must be a positive number")
	}
	if strings.TrimSpace(payload.WorkAuth) == "" {
		return 0, validationErr("work authorization is required")
	}
	if !payload.Consent {
		return 0, validationErr("consent is required")
	}

	switch payload.Mode {
	case domain.ModeRecord, domain.ModeUpload:
		if payload.Video == nil || len(payload.Video.Data) == 0 {
			return 0, validationErr("a video is required for this submission mode")
		}
	case domain.ModeText:
		if len(strings.TrimSpace(payload.TextResponse)) <= minTextResponseLength {
			return 0, validationErr(fmt.Sprintf("text response must be longer than %d characters", minTextResponseLength))
		}
	default:
		return 0, validationErr("a submission mode must be selected")
	}
	return age, nil
}

func (s *SubmissionService) resolveJobID(ctx context.Context, ref JobRef) (string, error) {
	if uuidPattern.MatchString(strings.ToLower(ref.ID)) {
		return ref.ID, nil
	}

	slug := ref.Slug
	if slug == "" {
		slug = ref.ID
	}
	if slug != "" {
		job, err := s.store.GetJobBySlug(ctx, slug)
		if err == nil {
			return job.ID, nil
		}
		if err != repository.ErrNotFound {
			return "", fmt.Errorf("resolve job by slug: %w", err)
		}
	}

	if ref.Title != "" && ref.Company != "" {
		job, err := s.store.GetJobByTitleCompany(ctx, ref.Title, ref.Company)
		if err == nil {
			return job.ID, nil
		}
		if err != repository.ErrNotFound {
			return "", fmt.Errorf("resolve job by title: %w", err)
		}
	}

	return "", repository.ErrNotFound
}

func (s *SubmissionService) persistVideo(ctx context.Context, trackerToken string, video *Upload, now time.Time) (string, error) {
	extension := videoExtension(video)
	assetPath := fmt.Sprintf("%s/%s-%d.%s", blob.NamespaceVideos, trackerToken, now.UnixMilli(), extension)
	stored, err := s.blobs.Put(ctx, assetPath, bytes.NewReader(video.Data))
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}
	return stored, nil
}

func (s *SubmissionService) persistResume(ctx context.Context, trackerToken string, resume *Upload, now time.Time) (string, error) {
	extension := strings.TrimPrefix(path.Ext(resume.Filename), ".")
	if extension == "" {
		extension = "pdf"
	}
	assetPath := fmt.Sprintf("%s/%s-%d.%s", blob.NamespaceResumes, trackerToken, now.UnixMilli(), extension)
	stored, err := s.blobs.Put(ctx, assetPath, bytes.NewReader(resume.Data))
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	return stored, nil
}

// videoExtension derives the filename extension from the upload: the file's
// own extension first, then the MIME subtype, then the platform default.
func videoExtension(video *Upload) string {
	if ext := strings.TrimPrefix(path.Ext(video.Filename), "."); ext != "" {
		return ext
	}
	if video.ContentType == "video/mp4" {
		return "mp4"
	}
	if _, subtype, ok := strings.Cut(video.ContentType, "/"); ok && subtype != "" {
		return subtype
	}
	return "webm"
}
