package user

import (
	"context"
	"time"
)

// Patch carries partial-update fields; nil fields keep their stored value.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Tier      *int
	IsActive  *bool
}

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Deactivate(ctx context.Context, id int64) (*User, error)
	TimeSummary(ctx context.Context, id int64, start, end *time.Time) ([]DaySummary, error)
}
