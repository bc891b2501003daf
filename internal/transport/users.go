package transport

import (
	"net/http"

	"github.com/brightops/pulse/internal/domain/user"
)

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Tier      int    `json:"tier" validate:"omitempty,min=1,max=3"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.svc.Users.Create(r.Context(), user.CreateRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Tier:      req.Tier,
	})
	if err != nil {
		s.respondError(w, r, err, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []user.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.svc.Users.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Tier      *int    `json:"tier" validate:"omitempty,min=1,max=3"`
	IsActive  *bool   `json:"is_active"`
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.svc.Users.Update(r.Context(), id, user.Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Tier:      req.Tier,
		IsActive:  req.IsActive,
	})
	if err != nil {
		s.respondError(w, r, err, "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.svc.Users.Deactivate(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to deactivate user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User deactivated successfully",
		"user":    u,
	})
}

func (s *Server) userTimeSummary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
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

	days, err := s.svc.Users.TimeSummary(r.Context(), id, start, end)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch time summary")
		return
	}

	writeJSON(w, http.StatusOK, days)
}
