package domain

// Applicant is the identity slice shown on the tracker page.
type Applicant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TrackerView is one application's status read: the joined job summary, the
// applicant identity and the full timeline, synthesized Delivered entry
// included.
type TrackerView struct {
	Applicant Applicant     `json:"applicant"`
	Job       JobSummary    `json:"job"`
	Timeline  []StatusEvent `json:"timeline"`
}
