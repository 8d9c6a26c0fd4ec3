package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/service"
	"github.com/oasis/talentboard/internal/tracker"
)

// TrackerHandler serves the candidate status page. Both URL forms resolve to
// the same lookup: /tracker/{token} and /tracker?token=.
type TrackerHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

func NewTrackerHandler(trackerSvc *service.TrackerService, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{tracker: trackerSvc, logger: logger}
}

func (h *TrackerHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, chi.URLParam(r, "token"))
}

func (h *TrackerHandler) ByQuery(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, r.URL.Query().Get("token"))
}

func (h *TrackerHandler) respond(w http.ResponseWriter, r *http.Request, trackerToken string) {
	trackerToken = strings.TrimSpace(trackerToken)
	if trackerToken == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "a tracker token is required")
		return
	}

	view, err := h.tracker.Snapshot(r.Context(), trackerToken)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tracker.BuildDisplay(view))
}
