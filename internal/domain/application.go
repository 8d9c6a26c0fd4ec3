package domain

import "time"

// SubmissionMode selects how the candidate answered the job prompt.
type SubmissionMode string

const (
	ModeRecord SubmissionMode = "record"
	ModeUpload SubmissionMode = "upload"
	ModeText   SubmissionMode = "text"
)

// Application is created exactly once per submission. Status is the only
// field mutated afterwards, and only through the reviewer path.
type Application struct {
	ID           string
	JobID        string
	Name         string
	Email        string
	Age          int
	WorkAuth     string
	Consent      bool
	ConsentAt    time.Time
	ConsentIP    string
	TrackerToken string
	Status       Status
	Mode         SubmissionMode
	VideoPath    string
	TextResponse string
	ResumePath   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UpdatedBy    string
}

// StatusEvent is one entry of an application's append-only timeline.
type StatusEvent struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// ApplicantSummary is the reviewer-facing row: application fields joined with
// the posting the candidate applied to.
type ApplicantSummary struct {
	ApplicationID string         `json:"application_id"`
	TrackerToken  string         `json:"tracker_token"`
	JobID         string         `json:"job_id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	WorkAuth      string         `json:"work_auth"`
	Status        Status         `json:"status"`
	AppliedAt     time.Time      `json:"applied_at"`
	Mode          SubmissionMode `json:"mode"`
	VideoPath     string         `json:"video_path,omitempty"`
	TextResponse  string         `json:"text_response,omitempty"`
	ResumePath    string         `json:"resume_path,omitempty"`
	JobTitle      string         `json:"job_title"`
	JobCompany    string         `json:"job_company"`
	JobTags       []string       `json:"job_tags"`
	PromptTitle   string         `json:"prompt_title"`
	PromptBody    string         `json:"prompt_body"`
}
