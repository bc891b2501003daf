package report

import (
	"context"
	"time"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/timeentry"
)

// Repository supplies the read-side snapshots the engine aggregates over.
// All methods are point-in-time reads; the engine itself performs no I/O.
type Repository interface {
	// ListActiveProjects returns projects in an active-like status with
	// owner names and the latest note joined in.
	ListActiveProjects(ctx context.Context) ([]project.Project, error)
	// ListActiveUsersWithHours returns every active user with worked hours,
	// PTO hours and distinct days worked inside [start, end].
	ListActiveUsersWithHours(ctx context.Context, start, end time.Time) ([]UserHours, error)
	// TimeSummaryByUser returns per-user hour totals inside [start, end].
	TimeSummaryByUser(ctx context.Context, start, end time.Time) ([]TimeSummaryRow, error)
	// HealthTrends returns daily health-change counts for the trailing window.
	HealthTrends(ctx context.Context, days int) ([]HealthTrend, error)
	// ExportProjects returns every project regardless of status.
	ExportProjects(ctx context.Context) ([]project.Project, error)
	// ExportTimeEntries returns entries with user names in an optional range.
	ExportTimeEntries(ctx context.Context, start, end *time.Time) ([]timeentry.Entry, error)
}

// Generator produces the narrative summary text for a rendered prompt. The
// OpenAI-backed implementation lives in internal/narrative; tests substitute
// a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
