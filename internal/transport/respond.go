package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/domain/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps domain errors to HTTP statuses. Unrecognized errors get a
// generic message; the root cause is logged by the caller.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, timeentry.ErrEntryNotFound),
		errors.Is(err, timeentry.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, timeentry.ErrInvalidInput),
		errors.Is(err, report.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, report.ErrNarrativeUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error(fallback, "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
