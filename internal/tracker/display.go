// Package tracker reconciles a remote status timeline into candidate-facing
// display state, both as a one-shot build and as a polling synchronizer.
package tracker

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/status"
)

// StageView is one of the five public pipeline cells.
type StageView struct {
	Label     string `json:"label"`
	Reached   bool   `json:"reached"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
	Message   string `json:"message"`
}

// TimelineEntry pairs a raw event with its canonical display label.
type TimelineEntry struct {
	Status    string    `json:"status"`
	RawStatus string    `json:"raw_status"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// DisplayState is the wholesale-replaced view consumed by the tracker page.
type DisplayState struct {
	Found     bool              `json:"found"`
	Job       domain.JobSummary `json:"job"`
	Applicant domain.Applicant  `json:"applicant"`
	Stages    []StageView       `json:"stages"`
	Timeline  []TimelineEntry   `json:"timeline"`
}

// NotFoundState is the terminal display for a token with no application.
func NotFoundState() DisplayState {
	return DisplayState{Found: false, Stages: emptyStages()}
}

// BuildDisplay canonicalizes a tracker view onto the fixed five-stage
// pipeline.
func BuildDisplay(view *domain.TrackerView) DisplayState {
	timeline := make([]TimelineEntry, 0, len(view.Timeline))
	reachedStages := make(map[status.Canonical]bool, len(view.Timeline))
	for _, event := range view.Timeline {
		canonical := status.Canonicalize(event.Status)
		reachedStages[canonical] = true
		timeline = append(timeline, TimelineEntry{
			Status:    canonical.Label(),
			RawStatus: string(event.Status),
			Note:      event.Note,
			Timestamp: event.Timestamp,
		})
	}

	latestRaw := domain.StatusDelivered
	latestNote := ""
	latest := status.CanonicalDelivered
	if len(view.Timeline) > 0 {
		last := view.Timeline[len(view.Timeline)-1]
		latestRaw = last.Status
		latestNote = last.Note
		latest = status.Canonicalize(last.Status)
	}

	stages := make([]StageView, 0, len(status.Stages))
	for _, stage := range status.Stages {
		cell := StageView{
			Label:     stage.Label(),
			Reached:   stage <= latest,
			Completed: reachedStages[stage],
			Active:    stage == latest,
		}
		if stage == status.CanonicalInvitation {
			if latest == status.CanonicalInvitation {
				cell.Message = status.InvitationMessage(latestRaw, latestNote)
			} else {
				cell.Message = status.MessageDefault
			}
		} else if cell.Completed {
			cell.Message = "Yes"
		} else {
			cell.Message = "Not yet"
		}
		stages = append(stages, cell)
	}

	return DisplayState{
		Found:     true,
		Job:       view.Job,
		Applicant: view.Applicant,
		Stages:    stages,
		Timeline:  timeline,
	}
}

// digest is the structural snapshot used to suppress redundant updates.
func digest(view *domain.TrackerView) string {
	encoded, _ := json.Marshal(view)
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

func emptyStages() []StageView {
	stages := make([]StageView, 0, len(status.Stages))
	for index, stage := range status.Stages {
		stages = append(stages, StageView{
			Label:   stage.Label(),
			Reached: index == 0,
			Active:  index == 0,
			Message: "Not yet",
		})
	}
	return stages
}
