package user

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

// Service handles user operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines user creation inputs.
type CreateRequest struct {
	FirstName string
	LastName  string
	Email     string
	Tier      int
}

// Create creates a new active user. Tier defaults to 2.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, ErrInvalidInput
	}
	tier := req.Tier
	if tier == 0 {
		tier = 2
	}
	if !ValidTier(tier) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	u := &User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Tier:      tier,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// List returns all users ordered by name.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to a user.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	if patch.FirstName != nil && strings.TrimSpace(*patch.FirstName) == "" {
		return nil, ErrInvalidInput
	}
	if patch.LastName != nil && strings.TrimSpace(*patch.LastName) == "" {
		return nil, ErrInvalidInput
	}
	if patch.Tier != nil && !ValidTier(*patch.Tier) {
		return nil, ErrInvalidInput
	}

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}

// Deactivate soft-deletes a user; their time entries remain.
func (s *Service) Deactivate(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("deactivating user: %w", err)
	}
	return u, nil
}

// TimeSummary returns per-day logged hours for a user in an optional range.
func (s *Service) TimeSummary(ctx context.Context, id int64, start, end *time.Time) ([]DaySummary, error) {
	days, err := s.repo.TimeSummary(ctx, id, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing time summary: %w", err)
	}
	return days, nil
}
