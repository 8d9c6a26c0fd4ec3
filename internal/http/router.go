// Package http wires the route table and middleware chain.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/config"
	"github.com/oasis/talentboard/internal/http/handlers"
	"github.com/oasis/talentboard/internal/http/middleware"
	"github.com/oasis/talentboard/internal/service"
)

// NewRouter assembles the full HTTP surface. The reviewer routes sit behind
// bearer auth; everything else is public.
func NewRouter(
	cfg config.Config,
	board *service.BoardService,
	submissions *service.SubmissionService,
	trackerSvc *service.TrackerService,
	logger *zap.Logger,
) http.Handler {
	jobsHandler := handlers.NewJobsHandler(board)
	applicationsHandler := handlers.NewApplicationsHandler(submissions, logger)
	trackerHandler := handlers.NewTrackerHandler(trackerSvc, logger)
	reviewHandler := handlers.NewReviewHandler(trackerSvc, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Trace(logger))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.Get("/healthz", handlers.Health)

	router.Get("/v1/jobs", jobsHandler.List)
	router.Post("/v1/applications", applicationsHandler.Create)

	router.Get("/tracker", trackerHandler.ByQuery)
	router.Get("/tracker/{token}", trackerHandler.ByPath)

	router.Route("/v1/review", func(review chi.Router) {
		review.Use(middleware.ReviewerAuth(cfg.ReviewerToken))
		review.Get("/applicants", reviewHandler.ListApplicants)
		review.Post("/applications/{token}/status", reviewHandler.AdvanceStatus)
	})

	return router
}
