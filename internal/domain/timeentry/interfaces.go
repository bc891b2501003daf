package timeentry

import (
	"context"
	"time"
)

// ListOptions filters time entry listings.
type ListOptions struct {
	UserID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}

// Patch carries partial-update fields; nil fields keep their stored value.
type Patch struct {
	Hours       *float64
	Description *string
}

// Repository provides persistence for time entries.
type Repository interface {
	Get(ctx context.Context, id int64) (*Entry, error)
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
	BulkUpsert(ctx context.Context, entries []Entry) ([]Entry, error)
	Update(ctx context.Context, id int64, patch Patch) (*Entry, error)
	Delete(ctx context.Context, id int64) error
}
