package transport

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/domain/user"
)

// Services bundles the domain services the HTTP layer dispatches to.
type Services struct {
	Projects    *project.Service
	Users       *user.Service
	TimeEntries *timeentry.Service
	Reports     *report.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer creates the API router with middleware. The auth middleware is
// optional; when nil the API is open (local development).
func NewServer(svc Services, logger *slog.Logger, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Get("/{id}", s.getProject)
			r.Put("/{id}", s.updateProject)
			r.Delete("/{id}", s.deleteProject)
			r.Post("/{id}/notes", s.addProjectNote)
			r.Get("/{id}/health-history", s.projectHealthHistory)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)
			r.Get("/{id}", s.getUser)
			r.Put("/{id}", s.updateUser)
			r.Delete("/{id}", s.deactivateUser)
			r.Get("/{id}/time-summary", s.userTimeSummary)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", s.listTimeEntries)
			r.Post("/", s.upsertTimeEntry)
			r.Post("/bulk-update", s.bulkUpdateTimeEntries)
			r.Get("/week-view/{userID}", s.weekView)
			r.Get("/reports/capacity", s.capacityReport)
			r.Get("/{id}", s.getTimeEntry)
			r.Put("/{id}", s.updateTimeEntry)
			r.Delete("/{id}", s.deleteTimeEntry)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/executive", s.executiveReport)
			r.Get("/project-risks", s.riskReport)
			r.Get("/time-summary", s.timeSummaryReport)
			r.Get("/project-health-trends", s.healthTrends)
			r.Get("/narrative", s.narrativeReport)
			r.Get("/export/projects", s.exportProjects)
			r.Get("/export/time-entries", s.exportTimeEntries)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
