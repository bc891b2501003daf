package mocks

import (
	"context"
	"time"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, id int64, patch project.Patch) (*project.Project, error) {
	args := m.Called(ctx, id, patch)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) AddNote(ctx context.Context, note *project.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *ProjectRepository) ListNotes(ctx context.Context, projectID int64) ([]project.Note, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListCustomFields(ctx context.Context, projectID int64) ([]project.CustomField, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.CustomField); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) AddHealthChange(ctx context.Context, change *project.HealthChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *ProjectRepository) ListHealthHistory(ctx context.Context, projectID int64) ([]project.HealthChange, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.HealthChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, id int64, patch user.Patch) (*user.User, error) {
	args := m.Called(ctx, id, patch)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Deactivate(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) TimeSummary(ctx context.Context, id int64, start, end *time.Time) ([]user.DaySummary, error) {
	args := m.Called(ctx, id, start, end)
	if list, ok := args.Get(0).([]user.DaySummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TimeEntryRepository is a mock for timeentry.Repository.
type TimeEntryRepository struct {
	mock.Mock
}

func (m *TimeEntryRepository) Get(ctx context.Context, id int64) (*timeentry.Entry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*timeentry.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) List(ctx context.Context, opts timeentry.ListOptions) ([]timeentry.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]timeentry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) Upsert(ctx context.Context, entry *timeentry.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *TimeEntryRepository) BulkUpsert(ctx context.Context, entries []timeentry.Entry) ([]timeentry.Entry, error) {
	args := m.Called(ctx, entries)
	if list, ok := args.Get(0).([]timeentry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) Update(ctx context.Context, id int64, patch timeentry.Patch) (*timeentry.Entry, error) {
	args := m.Called(ctx, id, patch)
	if entry, ok := args.Get(0).(*timeentry.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ReportRepository is a mock for report.Repository.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) ListActiveProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ListActiveUsersWithHours(ctx context.Context, start, end time.Time) ([]report.UserHours, error) {
	args := m.Called(ctx, start, end)
	if list, ok := args.Get(0).([]report.UserHours); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) TimeSummaryByUser(ctx context.Context, start, end time.Time) ([]report.TimeSummaryRow, error) {
	args := m.Called(ctx, start, end)
	if list, ok := args.Get(0).([]report.TimeSummaryRow); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) HealthTrends(ctx context.Context, days int) ([]report.HealthTrend, error) {
	args := m.Called(ctx, days)
	if list, ok := args.Get(0).([]report.HealthTrend); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ExportProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ExportTimeEntries(ctx context.Context, start, end *time.Time) ([]timeentry.Entry, error) {
	args := m.Called(ctx, start, end)
	if list, ok := args.Get(0).([]timeentry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
