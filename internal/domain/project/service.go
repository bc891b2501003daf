package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/brightops/pulse/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name         string
	Tier1OwnerID *int64
	Tier2OwnerID *int64
	Tier3Owners  []int64
	Status       Status
	Health       Health
	ARRValue     *float64
	CloseDate    *time.Time
	StartDate    *time.Time
}

// Create creates a new project and records its initial health entry.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if req.Status == "" {
		req.Status = StatusInProgress
	}
	if req.Health == "" {
		req.Health = HealthGreen
	}
	if !req.Status.Valid() || !req.Health.Valid() {
		return nil, ErrInvalidInput
	}
	if req.ARRValue != nil && *req.ARRValue < 0 {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	proj := &Project{
		Name:         req.Name,
		Tier1OwnerID: req.Tier1OwnerID,
		Tier2OwnerID: req.Tier2OwnerID,
		Tier3Owners:  req.Tier3Owners,
		Status:       req.Status,
		Health:       req.Health,
		ARRValue:     req.ARRValue,
		CloseDate:    req.CloseDate,
		StartDate:    req.StartDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	changedBy := req.Tier2OwnerID
	if changedBy == nil {
		changedBy = req.Tier1OwnerID
	}
	change := &HealthChange{
		ProjectID:    proj.ID,
		Health:       proj.Health,
		ChangedBy:    changedBy,
		ChangeReason: "Project created",
	}
	if err := s.repo.AddHealthChange(ctx, change); err != nil {
		s.logger.Warn("failed to record initial health entry", "project_id", proj.ID, "error", err)
	}

	return proj, nil
}

// Get fetches a project with its notes and custom fields.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	notes, err := s.repo.ListNotes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing project notes: %w", err)
	}
	fields, err := s.repo.ListCustomFields(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing custom fields: %w", err)
	}

	return &Detail{Project: *proj, Notes: notes, CustomFields: fields}, nil
}

// List returns projects matching the given filters.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidInput
	}
	if opts.Health != nil && !opts.Health.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, opts)
}

// UpdateRequest defines partial project updates; nil fields are unchanged.
type UpdateRequest struct {
	Patch
	ChangedBy          *int64
	HealthChangeReason string
}

// Update applies a partial update. A health change appends a history entry.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Project, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, ErrInvalidInput
	}
	if req.Health != nil && !req.Health.Valid() {
		return nil, ErrInvalidInput
	}
	if req.ARRValue != nil && *req.ARRValue < 0 {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	updated, err := s.repo.Update(ctx, id, req.Patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	if req.Health != nil && *req.Health != current.Health {
		reason := req.HealthChangeReason
		if reason == "" {
			reason = "Health status updated"
		}
		change := &HealthChange{
			ProjectID:    id,
			Health:       *req.Health,
			ChangedBy:    req.ChangedBy,
			ChangeReason: reason,
		}
		if err := s.repo.AddHealthChange(ctx, change); err != nil {
			s.logger.Warn("failed to record health change", "project_id", id, "error", err)
		}
	}

	return updated, nil
}

// Delete removes a project and its dependent rows.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// AddNote attaches a note to a project.
func (s *Service) AddNote(ctx context.Context, projectID int64, noteText string, createdBy *int64) (*Note, error) {
	if strings.TrimSpace(noteText) == "" {
		return nil, ErrInvalidInput
	}

	note := &Note{
		ProjectID: projectID,
		NoteText:  noteText,
		CreatedBy: createdBy,
	}
	if err := s.repo.AddNote(ctx, note); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("adding project note: %w", err)
	}
	return note, nil
}

// HealthHistory returns the project's health changes, newest first.
func (s *Service) HealthHistory(ctx context.Context, projectID int64) ([]HealthChange, error) {
	history, err := s.repo.ListHealthHistory(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing health history: %w", err)
	}
	return history, nil
}
