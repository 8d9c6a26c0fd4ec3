// Package status maps the internal status vocabulary onto the fixed
// five-stage pipeline shown to candidates.
package status

import (
	"strings"

	"github.com/oasis/talentboard/internal/domain"
)

// Canonical is one of the five public pipeline stages, plus the absorbing
// terminal reached from an explicit decline or offer.
type Canonical int

const (
	CanonicalDelivered Canonical = iota
	CanonicalUnderReview
	CanonicalInterview
	CanonicalOutcomePending
	CanonicalInvitation
	CanonicalTerminal
)

// Stages lists the five public stages in pipeline order.
var Stages = []Canonical{
	CanonicalDelivered,
	CanonicalUnderReview,
	CanonicalInterview,
	CanonicalOutcomePending,
	CanonicalInvitation,
}

var stageLabels = map[Canonical]string{
	CanonicalDelivered:      string(domain.StatusDelivered),
	CanonicalUnderReview:    string(domain.StatusUnderReview),
	CanonicalInterview:      string(domain.StatusInterview),
	CanonicalOutcomePending: string(domain.StatusOutcomePending),
	CanonicalInvitation:     string(domain.StatusInvitation),
	CanonicalTerminal:       string(domain.StatusGratefulDecline),
}

// Label returns the display label for a canonical stage.
func (c Canonical) Label() string {
	return stageLabels[c]
}

// Canonicalize collapses the richer internal vocabulary onto the public
// pipeline. Offer-ish and decline-ish raw statuses all land on the final
// Invitation stage; how that stage reads is decided by InvitationMessage.
func Canonicalize(raw domain.Status) Canonical {
	switch raw {
	case domain.StatusUnderReview:
		return CanonicalUnderReview
	case domain.StatusInterview:
		return CanonicalInterview
	case domain.StatusOutcomePending:
		return CanonicalOutcomePending
	case domain.StatusInvitation, domain.StatusPendingDecision, domain.StatusNotMetCriteria:
		return CanonicalInvitation
	case domain.StatusGratefulDecline, domain.StatusArchive:
		return CanonicalTerminal
	default:
		return CanonicalDelivered
	}
}

// Verdict is the inferred offer-vs-decline intent behind an invitation-stage
// status.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictOffer
	VerdictDecline
)

const (
	MessageDefault = "Not yet"
	MessageOffer   = "Hiring team just sent you an offer to your email"
	MessageDecline = "Hiring team decided to proceed with another candidate. Keep applying to other roles."
)

var declineKeywords = []string{"decline", "not a fit", "regret"}
var offerKeywords = []string{"offer", "invite", "welcome"}

// ClassifyNote infers intent from a free-text reviewer note. This is a
// best-effort keyword heuristic, never authoritative; decline keywords win.
func ClassifyNote(note string) Verdict {
	lowered := strings.ToLower(note)
	for _, keyword := range declineKeywords {
		if strings.Contains(lowered, keyword) {
			return VerdictDecline
		}
	}
	for _, keyword := range offerKeywords {
		if strings.Contains(lowered, keyword) {
			return VerdictOffer
		}
	}
	return VerdictNone
}

// InvitationMessage picks the candidate-facing message for the invitation
// stage. Explicit raw statuses take precedence over the note heuristic.
func InvitationMessage(raw domain.Status, note string) string {
	switch raw {
	case domain.StatusNotMetCriteria:
		return MessageDecline
	case domain.StatusPendingDecision:
		return MessageOffer
	}
	switch ClassifyNote(note) {
	case VerdictDecline:
		return MessageDecline
	case VerdictOffer:
		return MessageOffer
	default:
		return MessageDefault
	}
}

// DefaultNotes are the reviewer-note defaults appended when an advance call
// does not carry its own note.
var DefaultNotes = map[domain.Status]string{
	domain.StatusUnderReview:     "reviewing",
	domain.StatusInterview:       "interview",
	domain.StatusOutcomePending:  "shortlist",
	domain.StatusNotMetCriteria:  "decline",
	domain.StatusPendingDecision: "offer",
	domain.StatusInvitation:      "offer",
	domain.StatusArchive:         "archived",
}
