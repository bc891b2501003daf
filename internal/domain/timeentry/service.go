package timeentry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/brightops/pulse/internal/repository"
)

const dateLayout = "2006-01-02"

// Service handles time entry operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new time entry service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Get fetches a time entry by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	return entry, nil
}

// List returns time entries matching the given filters. A week start expands
// to a seven-day range.
func (s *Service) List(ctx context.Context, opts ListOptions, weekStart *time.Time) ([]Entry, error) {
	if weekStart != nil {
		start := *weekStart
		end := start.AddDate(0, 0, 6)
		opts.StartDate = &start
		opts.EndDate = &end
	}
	return s.repo.List(ctx, opts)
}

// WeekView returns a user's daily hours for the week beginning weekStart.
func (s *Service) WeekView(ctx context.Context, userID int64, weekStart time.Time) (*WeekView, error) {
	end := weekStart.AddDate(0, 0, 6)
	entries, err := s.repo.List(ctx, ListOptions{
		UserID:    &userID,
		StartDate: &weekStart,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("listing week entries: %w", err)
	}

	view := &WeekView{
		UserID:    userID,
		WeekStart: weekStart.Format(dateLayout),
		WeekEnd:   end.Format(dateLayout),
		WeekData:  make(map[string]float64, len(entries)),
	}
	for _, e := range entries {
		view.WeekData[e.EntryDate.Format(dateLayout)] = e.Hours
		view.WeekTotal += e.Hours
	}
	return view, nil
}

// UpsertRequest defines one entry to create or replace. Hours is a pointer so
// a missing value is distinguishable from zero.
type UpsertRequest struct {
	UserID      int64
	EntryDate   time.Time
	Hours       *float64
	Description string
}

func (r UpsertRequest) validate() error {
	if r.UserID <= 0 || r.EntryDate.IsZero() || r.Hours == nil {
		return ErrInvalidInput
	}
	return nil
}

// Upsert creates or replaces the entry for (user, date).
func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*Entry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:      req.UserID,
		EntryDate:   req.EntryDate,
		Hours:       *req.Hours,
		Description: req.Description,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("upserting time entry: %w", err)
	}
	return entry, nil
}

// BulkUpsert applies a batch of entries atomically: if any entry is invalid
// or any write fails, no entry from the batch is committed.
func (s *Service) BulkUpsert(ctx context.Context, reqs []UpsertRequest) ([]Entry, error) {
	if len(reqs) == 0 {
		return nil, ErrInvalidInput
	}

	entries := make([]Entry, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			UserID:      req.UserID,
			EntryDate:   req.EntryDate,
			Hours:       *req.Hours,
			Description: req.Description,
		})
	}

	saved, err := s.repo.BulkUpsert(ctx, entries)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("bulk upserting time entries: %w", err)
	}
	return saved, nil
}

// Update applies a partial update to an entry.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Entry, error) {
	entry, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("updating time entry: %w", err)
	}
	return entry, nil
}

// Delete removes a time entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}
