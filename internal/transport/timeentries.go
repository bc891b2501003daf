package transport

import (
	"net/http"
	"strconv"

	"github.com/brightops/pulse/internal/domain/timeentry"
)

func (s *Server) listTimeEntries(w http.ResponseWriter, r *http.Request) {
	var opts timeentry.ListOptions

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		opts.UserID = &userID
	}

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
	weekStart, err := dateQuery(r, "week_start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts.StartDate = start
	opts.EndDate = end

	entries, err := s.svc.TimeEntries.List(r.Context(), opts, weekStart)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch time entries")
		return
	}
	if entries == nil {
		entries = []timeentry.Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

type upsertEntryRequest struct {
	UserID      int64    `json:"user_id" validate:"required,gt=0"`
	EntryDate   string   `json:"entry_date" validate:"required"`
	Hours       *float64 `json:"hours" validate:"required"`
	Description string   `json:"description"`
}

func (req upsertEntryRequest) toDomain() (timeentry.UpsertRequest, error) {
	date, err := parseDatePtr(&req.EntryDate, "entry_date")
	if err != nil {
		return timeentry.UpsertRequest{}, err
	}
	out := timeentry.UpsertRequest{
		UserID:      req.UserID,
		Hours:       req.Hours,
		Description: req.Description,
	}
	if date != nil {
		out.EntryDate = *date
	}
	return out, nil
}

func (s *Server) upsertTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req upsertEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.svc.TimeEntries.Upsert(r.Context(), domainReq)
	if err != nil {
		s.respondError(w, r, err, "Failed to create/update time entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

type bulkUpdateRequest struct {
	Entries []upsertEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (s *Server) bulkUpdateTimeEntries(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reqs := make([]timeentry.UpsertRequest, 0, len(req.Entries))
	for _, e := range req.Entries {
		domainReq, err := e.toDomain()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		reqs = append(reqs, domainReq)
	}

	entries, err := s.svc.TimeEntries.BulkUpsert(r.Context(), reqs)
	if err != nil {
		s.respondError(w, r, err, "Failed to bulk update time entries")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Time entries updated successfully",
		"entries": entries,
	})
}

func (s *Server) weekView(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	weekStart, err := dateQuery(r, "week_start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if weekStart == nil {
		writeError(w, http.StatusBadRequest, "week_start parameter is required (YYYY-MM-DD format)")
		return
	}

	view, err := s.svc.TimeEntries.WeekView(r.Context(), userID, *weekStart)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch week view")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) getTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.svc.TimeEntries.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch time entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

type updateEntryRequest struct {
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
}

func (s *Server) updateTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := s.svc.TimeEntries.Update(r.Context(), id, timeentry.Patch{
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(w, r, err, "Failed to update time entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.TimeEntries.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err, "Failed to delete time entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Time entry deleted successfully"})
}

func (s *Server) capacityReport(w http.ResponseWriter, r *http.Request) {
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

	rep, err := s.svc.Reports.Capacity(r.Context(), *start, *end)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch capacity report")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}
