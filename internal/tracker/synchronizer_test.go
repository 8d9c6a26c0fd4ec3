package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
	"github.com/oasis/talentboard/internal/status"
)

type fakeReader struct {
	mu   sync.Mutex
	view *domain.TrackerView
	err  error
}

func (f *fakeReader) Snapshot(ctx context.Context, trackerToken string) (*domain.TrackerView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.view
	copied.Timeline = append([]domain.StatusEvent(nil), f.view.Timeline...)
	return &copied, nil
}

func (f *fakeReader) set(view *domain.TrackerView, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = view
	f.err = err
}

func deliveredView() *domain.TrackerView {
	return &domain.TrackerView{
		Applicant: domain.Applicant{Name: "Morgan Lee", Email: "morgan@candidate.com"},
		Job:       domain.JobSummary{ID: "job-driver", Title: "Fleet Driver", Company: "Swift Logistics"},
		Timeline: []domain.StatusEvent{{
			Status:    domain.StatusDelivered,
			Note:      "Confirmation email sent",
			Timestamp: time.Now().UTC().Add(-time.Hour),
		}},
	}
}

func awaitUpdate(t *testing.T, updates <-chan DisplayState) DisplayState {
	t.Helper()
	select {
	case state := <-updates:
		return state
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for an update")
		return DisplayState{}
	}
}

func TestTrackPublishesImmediately(t *testing.T) {
	reader := &fakeReader{}
	reader.set(deliveredView(), nil)
	poller := NewSynchronizer(reader, time.Hour, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-1")

	state := awaitUpdate(t, poller.Updates())
	if !state.Found {
		t.Fatalf("expected a found state")
	}
	if state.Job.Title != "Fleet Driver" {
		t.Fatalf("unexpected job %+v", state.Job)
	}
	if len(state.Stages) != len(status.Stages) {
		t.Fatalf("expected %d stages, got %d", len(status.Stages), len(state.Stages))
	}
	if !state.Stages[0].Active {
		t.Fatalf("a delivered-only timeline must leave the first stage active")
	}
}

func TestUnchangedViewIsNotRepublished(t *testing.T) {
	reader := &fakeReader{}
	reader.set(deliveredView(), nil)
	poller := NewSynchronizer(reader, 10*time.Millisecond, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-1")
	awaitUpdate(t, poller.Updates())

	select {
	case <-poller.Updates():
		t.Fatalf("an identical view must not publish again")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChangedViewIsRepublished(t *testing.T) {
	reader := &fakeReader{}
	view := deliveredView()
	reader.set(view, nil)
	poller := NewSynchronizer(reader, 10*time.Millisecond, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-1")
	awaitUpdate(t, poller.Updates())

	advanced := deliveredView()
	advanced.Timeline = append(advanced.Timeline, domain.StatusEvent{
		Status:    domain.StatusUnderReview,
		Note:      "reviewing",
		Timestamp: time.Now().UTC(),
	})
	reader.set(advanced, nil)

	state := awaitUpdate(t, poller.Updates())
	if len(state.Timeline) != 2 {
		t.Fatalf("expected the advanced timeline, got %d entries", len(state.Timeline))
	}
	if !state.Stages[1].Active {
		t.Fatalf("Under Review must activate the second stage")
	}
}

func TestFirstFetchNotFoundClearsState(t *testing.T) {
	reader := &fakeReader{}
	reader.set(nil, repository.ErrNotFound)
	poller := NewSynchronizer(reader, time.Hour, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-gone")

	state := awaitUpdate(t, poller.Updates())
	if state.Found {
		t.Fatalf("a missing token must publish the not-found state")
	}
	if len(state.Stages) != len(status.Stages) {
		t.Fatalf("the not-found state still renders all stages")
	}
}

func TestLaterFailureKeepsPublishedState(t *testing.T) {
	reader := &fakeReader{}
	reader.set(deliveredView(), nil)
	poller := NewSynchronizer(reader, 10*time.Millisecond, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-1")
	awaitUpdate(t, poller.Updates())

	reader.set(nil, errors.New("backend unavailable"))

	select {
	case state := <-poller.Updates():
		t.Fatalf("a transient failure must not publish, got %+v", state)
	case <-time.After(100 * time.Millisecond):
	}
	current, ok := poller.Current()
	if !ok || !current.Found {
		t.Fatalf("the previously published state must survive the failure")
	}
}

func TestRetrackSupersedesPreviousRun(t *testing.T) {
	reader := &fakeReader{}
	reader.set(deliveredView(), nil)
	poller := NewSynchronizer(reader, time.Hour, zap.NewNop())
	defer poller.Stop()

	poller.Track(context.Background(), "tok-1")
	awaitUpdate(t, poller.Updates())

	second := deliveredView()
	second.Job.Title = "Legal Counsel"
	reader.set(second, nil)
	poller.Track(context.Background(), "tok-2")

	state := awaitUpdate(t, poller.Updates())
	if state.Job.Title != "Legal Counsel" {
		t.Fatalf("expected the new run's view, got %+v", state.Job)
	}
}
