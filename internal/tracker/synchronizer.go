package tracker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
)

const defaultPollInterval = 10 * time.Second

// Reader loads the current tracker view for one token.
type Reader interface {
	Snapshot(ctx context.Context, trackerToken string) (*domain.TrackerView, error)
}

// Synchronizer polls a Reader for one tracker token and publishes a fresh
// DisplayState whenever the underlying view structurally changes. Published
// states replace each other wholesale; consumers never merge.
type Synchronizer struct {
	reader   Reader
	logger   *zap.Logger
	interval time.Duration

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    DisplayState
	lastDigest string
	published  bool

	updates chan DisplayState
}

func NewSynchronizer(reader Reader, interval time.Duration, logger *zap.Logger) *Synchronizer {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Synchronizer{
		reader:   reader,
		logger:   logger,
		interval: interval,
		updates:  make(chan DisplayState, 8),
	}
}

// Updates delivers every published state change. Slow consumers lose
// intermediate states, never the latest one.
func (s *Synchronizer) Updates() <-chan DisplayState {
	return s.updates
}

// Current returns the last published state and whether anything has been
// published yet.
func (s *Synchronizer) Current() (DisplayState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.published
}

// Track starts polling for trackerToken, replacing any run already in
// flight. The first fetch happens immediately. A superseded run may still
// have a fetch in flight; its completion is discarded by the generation
// check.
func (s *Synchronizer) Track(ctx context.Context, trackerToken string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	generation := s.generation
	s.lastDigest = ""
	s.published = false
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx, generation, trackerToken)
}

// Stop cancels the active run, if any.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Synchronizer) run(ctx context.Context, generation uint64, trackerToken string) {
	s.poll(ctx, generation, trackerToken, true)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx, generation, trackerToken, false)
		}
	}
}

// poll fetches once and publishes if the view changed. Only the first fetch
// of a run may clear to the not-found state; later failures keep whatever
// was already shown, so a transient backend hiccup never blanks the page.
func (s *Synchronizer) poll(ctx context.Context, generation uint64, trackerToken string, first bool) {
	view, err := s.reader.Snapshot(ctx, trackerToken)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if err != repository.ErrNotFound {
			s.logger.Warn("tracker poll failed", zap.Error(err))
		}
		if first {
			s.publish(generation, "", NotFoundState())
		}
		return
	}
	s.publish(generation, digest(view), BuildDisplay(view))
}

func (s *Synchronizer) publish(generation uint64, viewDigest string, state DisplayState) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	if s.published && viewDigest != "" && viewDigest == s.lastDigest {
		s.mu.Unlock()
		return
	}
	s.current = state
	s.lastDigest = viewDigest
	s.published = true
	s.mu.Unlock()

	for {
		select {
		case s.updates <- state:
			return
		default:
			// Drop the oldest buffered state so the latest always lands.
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
