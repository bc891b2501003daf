package transport

import (
	"net/http"
	"strconv"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/timeentry"
)

func (s *Server) executiveReport(w http.ResponseWriter, r *http.Request) {
	start, err := dateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.svc.Reports.Executive(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, "Failed to generate executive report")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) riskReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.svc.Reports.Risks(r.Context())
	if err != nil {
		s.respondError(w, r, err, "Failed to generate risk report")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) timeSummaryReport(w http.ResponseWriter, r *http.Request) {
	start, err := dateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if start == nil || end == nil {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = "user"
	}

	rep, err := s.svc.Reports.TimeSummary(r.Context(), *start, *end, groupBy)
	if err != nil {
		s.respondError(w, r, err, "Failed to generate time summary")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) healthTrends(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	trends, err := s.svc.Reports.HealthTrends(r.Context(), days)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch health trends")
		return
	}

	writeJSON(w, http.StatusOK, trends)
}

func (s *Server) narrativeReport(w http.ResponseWriter, r *http.Request) {
	start, err := dateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.svc.Reports.Narrative(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, "Failed to generate narrative report")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) exportProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Reports.ExportProjects(r.Context())
	if err != nil {
		s.respondError(w, r, err, "Failed to export projects")
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) exportTimeEntries(w http.ResponseWriter, r *http.Request) {
	start, err := dateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.svc.Reports.ExportTimeEntries(r.Context(), start, end)
	if err != nil {
		s.respondError(w, r, err, "Failed to export time entries")
		return
	}
	if entries == nil {
		entries = []timeentry.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
