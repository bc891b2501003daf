package timeentry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/repository"
	"github.com/brightops/pulse/internal/repository/mocks"
)

func hoursPtr(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestListExpandsWeekStart(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	weekStart := day(2025, 6, 2)
	weekEnd := day(2025, 6, 8)
	repo.On("List", mock.Anything, mock.MatchedBy(func(opts timeentry.ListOptions) bool {
		return opts.StartDate != nil && opts.StartDate.Equal(weekStart) &&
			opts.EndDate != nil && opts.EndDate.Equal(weekEnd)
	})).Return([]timeentry.Entry{}, nil)

	_, err := svc.List(context.Background(), timeentry.ListOptions{}, &weekStart)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestWeekView(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	weekStart := day(2025, 6, 2)
	entries := []timeentry.Entry{
		{ID: 1, UserID: 7, EntryDate: day(2025, 6, 2), Hours: 8},
		{ID: 2, UserID: 7, EntryDate: day(2025, 6, 3), Hours: 6.5},
		{ID: 3, UserID: 7, EntryDate: day(2025, 6, 4), Hours: -8},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(entries, nil)

	view, err := svc.WeekView(context.Background(), 7, weekStart)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", view.WeekStart)
	assert.Equal(t, "2025-06-08", view.WeekEnd)
	assert.Equal(t, 8.0, view.WeekData["2025-06-02"])
	assert.Equal(t, -8.0, view.WeekData["2025-06-04"])
	// PTO entries are negative and reduce the weekly total.
	assert.Equal(t, 6.5, view.WeekTotal)
}

func TestUpsertValidation(t *testing.T) {
	svc := timeentry.NewService(new(mocks.TimeEntryRepository), nil)

	_, err := svc.Upsert(context.Background(), timeentry.UpsertRequest{
		EntryDate: day(2025, 6, 2), Hours: hoursPtr(8),
	})
	assert.ErrorIs(t, err, timeentry.ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), timeentry.UpsertRequest{
		UserID: 1, Hours: hoursPtr(8),
	})
	assert.ErrorIs(t, err, timeentry.ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), timeentry.UpsertRequest{
		UserID: 1, EntryDate: day(2025, 6, 2),
	})
	assert.ErrorIs(t, err, timeentry.ErrInvalidInput)
}

func TestUpsertZeroHoursAllowed(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(e *timeentry.Entry) bool {
		return e.UserID == 1 && e.Hours == 0
	})).Return(nil)

	entry, err := svc.Upsert(context.Background(), timeentry.UpsertRequest{
		UserID: 1, EntryDate: day(2025, 6, 2), Hours: hoursPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, entry.Hours)
}

func TestUpsertUnknownUser(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	repo.On("Upsert", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := svc.Upsert(context.Background(), timeentry.UpsertRequest{
		UserID: 99, EntryDate: day(2025, 6, 2), Hours: hoursPtr(8),
	})
	assert.ErrorIs(t, err, timeentry.ErrUserNotFound)
}

func TestBulkUpsertRejectsEmptyBatch(t *testing.T) {
	svc := timeentry.NewService(new(mocks.TimeEntryRepository), nil)

	_, err := svc.BulkUpsert(context.Background(), nil)
	assert.ErrorIs(t, err, timeentry.ErrInvalidInput)
}

func TestBulkUpsertValidatesBeforeWriting(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	reqs := []timeentry.UpsertRequest{
		{UserID: 1, EntryDate: day(2025, 6, 2), Hours: hoursPtr(8)},
		{UserID: 0, EntryDate: day(2025, 6, 3), Hours: hoursPtr(8)},
	}

	_, err := svc.BulkUpsert(context.Background(), reqs)
	assert.ErrorIs(t, err, timeentry.ErrInvalidInput)
	repo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
}

func TestBulkUpsert(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	saved := []timeentry.Entry{
		{ID: 1, UserID: 1, EntryDate: day(2025, 6, 2), Hours: 8},
		{ID: 2, UserID: 1, EntryDate: day(2025, 6, 3), Hours: -8, Description: "PTO"},
	}
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(saved, nil)

	got, err := svc.BulkUpsert(context.Background(), []timeentry.UpsertRequest{
		{UserID: 1, EntryDate: day(2025, 6, 2), Hours: hoursPtr(8)},
		{UserID: 1, EntryDate: day(2025, 6, 3), Hours: hoursPtr(-8), Description: "PTO"},
	})
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestGetNotFound(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	repo.On("Get", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, timeentry.ErrEntryNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	repo := new(mocks.TimeEntryRepository)
	svc := timeentry.NewService(repo, nil)

	repo.On("Delete", mock.Anything, int64(404)).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, timeentry.ErrEntryNotFound)
}
