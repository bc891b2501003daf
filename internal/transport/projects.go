package transport

import (
	"net/http"
	"strconv"

	"github.com/brightops/pulse/internal/domain/project"
)

type createProjectRequest struct {
	ProjectName   string   `json:"project_name" validate:"required"`
	Tier1OwnerID  *int64   `json:"tier1_owner_id"`
	Tier2OwnerID  *int64   `json:"tier2_owner_id"`
	Tier3OwnerID  *int64   `json:"tier3_owner_id"`
	Tier3OwnerIDs []int64  `json:"tier3_owner_ids"`
	Status        string   `json:"status" validate:"omitempty,oneof=in_progress in_planning on_hold completed cancelled active ongoing delivering"`
	Health        string   `json:"health" validate:"omitempty,oneof=green yellow red"`
	ARRValue      *float64 `json:"arr_value" validate:"omitempty,gte=0"`
	CloseDate     *string  `json:"close_date"`
	StartDate     *string  `json:"start_date"`
}

// tier3Owners resolves the multiselect list, falling back to the legacy
// single-owner field.
func (req createProjectRequest) tier3Owners() []int64 {
	if len(req.Tier3OwnerIDs) > 0 {
		return req.Tier3OwnerIDs
	}
	if req.Tier3OwnerID != nil {
		return []int64{*req.Tier3OwnerID}
	}
	return nil
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	closeDate, err := parseDatePtr(req.CloseDate, "close_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := parseDatePtr(req.StartDate, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	proj, err := s.svc.Projects.Create(r.Context(), project.CreateRequest{
		Name:         req.ProjectName,
		Tier1OwnerID: req.Tier1OwnerID,
		Tier2OwnerID: req.Tier2OwnerID,
		Tier3Owners:  req.tier3Owners(),
		Status:       project.Status(req.Status),
		Health:       project.Health(req.Health),
		ARRValue:     req.ARRValue,
		CloseDate:    closeDate,
		StartDate:    startDate,
	})
	if err != nil {
		s.respondError(w, r, err, "Failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	var opts project.ListOptions

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := project.Status(raw)
		opts.Status = &status
	}
	if raw := r.URL.Query().Get("health"); raw != "" {
		health := project.Health(raw)
		opts.Health = &health
	}
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid owner_id")
			return
		}
		opts.OwnerID = &ownerID
	}

	projects, err := s.svc.Projects.List(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch projects")
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := s.svc.Projects.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch project")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

type updateProjectRequest struct {
	ProjectName        *string  `json:"project_name"`
	Tier1OwnerID       *int64   `json:"tier1_owner_id"`
	Tier2OwnerID       *int64   `json:"tier2_owner_id"`
	Tier3OwnerID       *int64   `json:"tier3_owner_id"`
	Tier3OwnerIDs      *[]int64 `json:"tier3_owner_ids"`
	Status             *string  `json:"status" validate:"omitempty,oneof=in_progress in_planning on_hold completed cancelled active ongoing delivering"`
	Health             *string  `json:"health" validate:"omitempty,oneof=green yellow red"`
	ARRValue           *float64 `json:"arr_value" validate:"omitempty,gte=0"`
	CloseDate          *string  `json:"close_date"`
	StartDate          *string  `json:"start_date"`
	RiskDescription    *string  `json:"risk_description"`
	AskDescription     *string  `json:"ask_description"`
	ImpactDescription  *string  `json:"impact_description"`
	IsClosed           *bool    `json:"is_closed"`
	ChangedBy          *int64   `json:"changed_by"`
	HealthChangeReason string   `json:"health_change_reason"`
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	closeDate, err := parseDatePtr(req.CloseDate, "close_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := parseDatePtr(req.StartDate, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := project.Patch{
		Name:              req.ProjectName,
		Tier1OwnerID:      req.Tier1OwnerID,
		Tier2OwnerID:      req.Tier2OwnerID,
		ARRValue:          req.ARRValue,
		CloseDate:         closeDate,
		StartDate:         startDate,
		RiskDescription:   req.RiskDescription,
		AskDescription:    req.AskDescription,
		ImpactDescription: req.ImpactDescription,
		IsClosed:          req.IsClosed,
	}
	if req.Status != nil {
		status := project.Status(*req.Status)
		patch.Status = &status
	}
	if req.Health != nil {
		health := project.Health(*req.Health)
		patch.Health = &health
	}
	if req.Tier3OwnerIDs != nil {
		patch.Tier3Owners = req.Tier3OwnerIDs
	} else if req.Tier3OwnerID != nil {
		owners := []int64{*req.Tier3OwnerID}
		patch.Tier3Owners = &owners
	}

	proj, err := s.svc.Projects.Update(r.Context(), id, project.UpdateRequest{
		Patch:              patch,
		ChangedBy:          req.ChangedBy,
		HealthChangeReason: req.HealthChangeReason,
	})
	if err != nil {
		s.respondError(w, r, err, "Failed to update project")
		return
	}

	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.Projects.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err, "Failed to delete project")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

type addNoteRequest struct {
	NoteText  string `json:"note_text" validate:"required"`
	CreatedBy *int64 `json:"created_by"`
}

func (s *Server) addProjectNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.svc.Projects.AddNote(r.Context(), id, req.NoteText, req.CreatedBy)
	if err != nil {
		s.respondError(w, r, err, "Failed to add project note")
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) projectHealthHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := s.svc.Projects.HealthHistory(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch health history")
		return
	}

	writeJSON(w, http.StatusOK, history)
}
