package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/blob"
	"github.com/oasis/talentboard/internal/catalog"
	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/repository"
)

type fakeNotifier struct {
	mu            sync.Mutex
	created       []any
	statusUpdates []string
}

func (f *fakeNotifier) ApplicationCreated(payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
}

func (f *fakeNotifier) StatusUpdated(trackerToken string, statusValue string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, trackerToken+"|"+statusValue)
}

func newSubmissionFixture(t *testing.T) (*SubmissionService, *repository.MemoryStore, *fakeNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := store.SeedJobs(context.Background(), catalog.SeedJobs()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	blobs, err := blob.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	notifier := &fakeNotifier{}
	svc := NewSubmissionService(store, blobs, notifier, "https://board.oasis.com", zap.NewNop())
	return svc, store, notifier
}

func validTextPayload() SubmissionPayload {
	return SubmissionPayload{
		Name:         "Morgan Lee",
		Email:        "morgan@candidate.com",
		Age:          "29",
		WorkAuth:     "Work permit",
		Consent:      true,
		Mode:         domain.ModeText,
		TextResponse: "I would call the customer immediately and own the delay.",
	}
}

func TestSubmitTextModeHappyPath(t *testing.T) {
	svc, store, notifier := newSubmissionFixture(t)

	result, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, validTextPayload())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TrackerToken == "" {
		t.Fatalf("expected a tracker token")
	}
	if !strings.HasPrefix(result.TrackerURL, "https://board.oasis.com/tracker?token=") {
		t.Fatalf("unexpected tracker URL %q", result.TrackerURL)
	}

	application, _, err := store.GetApplicationByToken(context.Background(), result.TrackerToken)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if application.Status != domain.StatusDelivered {
		t.Fatalf("new applications start Delivered, got %q", application.Status)
	}
	if application.JobID != "job-driver" {
		t.Fatalf("unexpected job id %q", application.JobID)
	}
	if len(notifier.created) != 1 {
		t.Fatalf("expected one new-application notification, got %d", len(notifier.created))
	}
}

func TestSubmitTextLengthBoundary(t *testing.T) {
	svc, _, _ := newSubmissionFixture(t)

	short := validTextPayload()
	short.TextResponse = "fifteen chars.."
	if _, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, short); !IsValidation(err) {
		t.Fatalf("a 15-character response must fail validation, got %v", err)
	}

	long := validTextPayload()
	long.TextResponse = "twenty-five characters ok"
	if _, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, long); err != nil {
		t.Fatalf("a 25-character response must pass, got %v", err)
	}
}

func TestSubmitValidatesBeforeAnyIO(t *testing.T) {
	svc, _, notifier := newSubmissionFixture(t)

	cases := []func(*SubmissionPayload){
		func(p *SubmissionPayload) { p.Name = "" },
		func(p *SubmissionPayload) { p.Email = " " },
		func(p *SubmissionPayload) { p.Age = "not a number" },
		func(p *SubmissionPayload) { p.WorkAuth = "" },
		func(p *SubmissionPayload) { p.Consent = false },
		func(p *SubmissionPayload) { p.Mode = "" },
	}
	for index, mutate := range cases {
		payload := validTextPayload()
		mutate(&payload)
		if _, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, payload); !IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", index, err)
		}
	}
	if len(notifier.created) != 0 {
		t.Fatalf("failed validations must not notify")
	}
}

func TestSubmitVideoModeRequiresBlobAndStoresAsset(t *testing.T) {
	svc, store, _ := newSubmissionFixture(t)

	payload := validTextPayload()
	payload.Mode = domain.ModeUpload
	payload.TextResponse = ""
	if _, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, payload); !IsValidation(err) {
		t.Fatalf("empty blob must fail validation, got %v", err)
	}

	payload.Video = &Upload{Filename: "intro.mov", ContentType: "video/quicktime", Data: []byte("frames")}
	result, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, payload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	application, _, _ := store.GetApplicationByToken(context.Background(), result.TrackerToken)
	if !strings.HasPrefix(application.VideoPath, "videos/"+result.TrackerToken) {
		t.Fatalf("video path must be namespaced by token, got %q", application.VideoPath)
	}
	if !strings.HasSuffix(application.VideoPath, ".mov") {
		t.Fatalf("extension must come from the filename, got %q", application.VideoPath)
	}
}

func TestSubmitResolvesJobByTitleAndCompany(t *testing.T) {
	svc, _, _ := newSubmissionFixture(t)

	payload := validTextPayload()
	ref := JobRef{ID: "stale-display-id", Title: "Fleet Driver", Company: "Swift Logistics"}
	if _, err := svc.Submit(context.Background(), ref, payload); err != nil {
		t.Fatalf("title+company resolution failed: %v", err)
	}
}

func TestSubmitUnknownJobFailsWithNotFound(t *testing.T) {
	svc, _, notifier := newSubmissionFixture(t)

	_, err := svc.Submit(context.Background(), JobRef{ID: "job-vanished"}, validTextPayload())
	if err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(notifier.created) != 0 {
		t.Fatalf("failed submissions must not notify")
	}
}

func TestSubmitMintsFreshTokenPerCall(t *testing.T) {
	svc, _, _ := newSubmissionFixture(t)

	first, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, validTextPayload())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.Submit(context.Background(), JobRef{ID: "job-driver"}, validTextPayload())
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if first.TrackerToken == second.TrackerToken {
		t.Fatalf("a retried submission must mint a new token")
	}
}

func TestVideoExtensionFallbacks(t *testing.T) {
	cases := []struct {
		upload Upload
		want   string
	}{
		{Upload{Filename: "clip.mp4"}, "mp4"},
		{Upload{ContentType: "video/mp4"}, "mp4"},
		{Upload{ContentType: "video/ogg"}, "ogg"},
		{Upload{}, "webm"},
	}
	for _, tc := range cases {
		if got := videoExtension(&tc.upload); got != tc.want {
			t.Errorf("videoExtension(%+v) = %q, want %q", tc.upload, got, tc.want)
		}
	}
}
