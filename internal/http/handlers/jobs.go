package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/service"
)

// JobsHandler serves the candidate-facing board list.
type JobsHandler struct {
	board *service.BoardService
}

func NewJobsHandler(board *service.BoardService) *JobsHandler {
	return &JobsHandler{board: board}
}

type jobsResponse struct {
	Jobs             []domain.Job `json:"jobs"`
	Count            int          `json:"count"`
	TrendingFallback bool         `json:"trending_fallback"`
}

// List handles GET /v1/jobs. Every filter is a query parameter; an absent
// parameter is no constraint.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria := domain.FilterCriteria{
		Query:     strings.TrimSpace(query.Get("q")),
		Spot:      strings.TrimSpace(query.Get("spot")),
		Timeline:  strings.TrimSpace(query.Get("timeline")),
		Announced: strings.TrimSpace(query.Get("announced")),
		Domain:    strings.TrimSpace(query.Get("domain")),
		Role:      strings.TrimSpace(query.Get("role")),
		Niche:     strings.TrimSpace(query.Get("niche")),
	}
	if raw := strings.TrimSpace(query.Get("tenure")); raw != "" {
		tenure, err := strconv.Atoi(raw)
		if err != nil || tenure < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "tenure must be a non-negative number")
			return
		}
		criteria.Tenure = tenure
	}

	jobs, fallback := h.board.Search(criteria)
	writeJSON(w, http.StatusOK, jobsResponse{
		Jobs:             jobs,
		Count:            len(jobs),
		TrendingFallback: fallback,
	})
}
