package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/service"
)

// ReviewHandler is the authenticated reviewer surface.
type ReviewHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

func NewReviewHandler(trackerSvc *service.TrackerService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{tracker: trackerSvc, logger: logger}
}

type applicantsResponse struct {
	Applicants []domain.ApplicantSummary `json:"applicants"`
	Count      int                       `json:"count"`
}

// ListApplicants handles GET /v1/review/applicants.
func (h *ReviewHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.tracker.ListApplicants(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, applicantsResponse{Applicants: applicants, Count: len(applicants)})
}

type advanceRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// AdvanceStatus handles POST /v1/review/applications/{token}/status.
func (h *ReviewHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	trackerToken := strings.TrimSpace(chi.URLParam(r, "token"))
	if trackerToken == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "a tracker token is required")
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	if err := h.tracker.Advance(r.Context(), trackerToken, domain.Status(req.Status), req.Note); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"tracker_token": trackerToken,
		"status":        req.Status,
	})
}
