package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/status"
)

const defaultReviewerEmail = "hr@oasis.com"

// TrackerService is the status read for candidates and the status write for
// reviewers. Advance is the only path that mutates an application's status.
type TrackerService struct {
	store         repository.Store
	webhook       Notifier
	logger        *zap.Logger
	reviewerEmail string
}

func NewTrackerService(store repository.Store, webhook Notifier, reviewerEmail string, logger *zap.Logger) *TrackerService {
	if reviewerEmail == "" {
		reviewerEmail = defaultReviewerEmail
	}
	return &TrackerService{
		store:         store,
		webhook:       webhook,
		logger:        logger,
		reviewerEmail: reviewerEmail,
	}
}

// Snapshot reads one application's tracker view. The timeline always starts
// with a synthesized Delivered entry at creation time; when no actions were
// recorded but the stored status moved on, a single synthetic entry for that
// status follows.
func (s *TrackerService) Snapshot(ctx context.Context, trackerToken string) (*domain.TrackerView, error) {
	application, jobSummary, err := s.store.GetApplicationByToken(ctx, trackerToken)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load application: %w", err)
	}

	timeline := []domain.StatusEvent{{
		Status:    domain.StatusDelivered,
		Note:      "Confirmation email sent",
		Timestamp: application.CreatedAt,
	}}

	actions, err := s.store.ListActions(ctx, application.ID)
	if err != nil {
		// The view stays useful with just the synthesized entry.
		s.logger.Error("failed to load action log",
			zap.String("application_id", application.ID),
			zap.Error(err),
		)
		actions = nil
	}

	if len(actions) > 0 {
		timeline = append(timeline, actions...)
	} else if application.Status != domain.StatusDelivered {
		timestamp := application.UpdatedAt
		if timestamp.IsZero() {
			timestamp = application.CreatedAt
		}
		timeline = append(timeline, domain.StatusEvent{
			Status:    application.Status,
			Timestamp: timestamp,
		})
	}

	return &domain.TrackerView{
		Applicant: domain.Applicant{Name: application.Name, Email: application.Email},
		Job:       *jobSummary,
		Timeline:  timeline,
	}, nil
}

// Advance moves an application to a new status: updates the record, appends
// the action with its classification note, then notifies the status hook.
// Retried calls append again; deduplication is deliberately not attempted.
func (s *TrackerService) Advance(ctx context.Context, trackerToken string, newStatus domain.Status, note string) error {
	if !domain.IsKnownStatus(newStatus) {
		return validationErr(fmt.Sprintf("unknown status %q", newStatus))
	}

	applicationID, err := s.store.UpdateApplicationStatus(ctx, trackerToken, newStatus, s.reviewerEmail)
	if err != nil {
		if err == repository.ErrNotFound {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update status: %w", err)
	}

	if note == "" {
		note = status.DefaultNotes[newStatus]
	}
	event := domain.StatusEvent{
		Status:    newStatus,
		Note:      note,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AppendAction(ctx, applicationID, event, s.reviewerEmail); err != nil {
		return fmt.Errorf("append action: %w", err)
	}

	s.webhook.StatusUpdated(trackerToken, string(newStatus))

	s.logger.Info("application advanced",
		zap.String("application_id", applicationID),
		zap.String("status", string(newStatus)),
	)
	return nil
}

// ListApplicants is the reviewer list view.
func (s *TrackerService) ListApplicants(ctx context.Context) ([]domain.ApplicantSummary, error) {
	return s.store.ListApplicants(ctx)
}
