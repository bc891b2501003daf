package project

import (
	"context"
	"time"
)

// ListOptions filters project listings.
type ListOptions struct {
	Status  *Status
	Health  *Health
	OwnerID *int64
}

// Patch carries partial-update fields; nil fields keep their stored value.
type Patch struct {
	Name              *string
	Tier1OwnerID      *int64
	Tier2OwnerID      *int64
	Tier3Owners       *[]int64
	Status            *Status
	Health            *Health
	ARRValue          *float64
	CloseDate         *time.Time
	StartDate         *time.Time
	RiskDescription   *string
	AskDescription    *string
	ImpactDescription *string
	IsClosed          *bool
}

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	Update(ctx context.Context, id int64, patch Patch) (*Project, error)
	Delete(ctx context.Context, id int64) error
	AddNote(ctx context.Context, note *Note) error
	ListNotes(ctx context.Context, projectID int64) ([]Note, error)
	ListCustomFields(ctx context.Context, projectID int64) ([]CustomField, error)
	AddHealthChange(ctx context.Context, change *HealthChange) error
	ListHealthHistory(ctx context.Context, projectID int64) ([]HealthChange, error)
}
