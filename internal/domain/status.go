package domain

// Status is the internal status vocabulary. Values are fixed strings; the
// reviewer surface rejects anything outside this set.
type Status string

const (
	StatusDelivered       Status = "Application Delivered"
	StatusUnderReview     Status = "Under Review"
	StatusInterview       Status = "Interview stage"
	StatusOutcomePending  Status = "Outcome pending"
	StatusInvitation      Status = "Invitation to Join"
	StatusPendingDecision Status = "Pending applicant decision"
	StatusNotMetCriteria  Status = "Doesn't meet criteria"
	StatusGratefulDecline Status = "Grateful Decline"
	StatusArchive         Status = "Archive"
)

// KnownStatuses lists every accepted internal status value.
var KnownStatuses = []Status{
	StatusDelivered,
	StatusUnderReview,
	StatusInterview,
	StatusOutcomePending,
	StatusInvitation,
	StatusPendingDecision,
	StatusNotMetCriteria,
	StatusGratefulDecline,
	StatusArchive,
}

// IsKnownStatus reports whether raw is part of the internal vocabulary.
func IsKnownStatus(raw Status) bool {
	for _, status := range KnownStatuses {
		if status == raw {
			return true
		}
	}
	return false
}
