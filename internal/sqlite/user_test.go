package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/domain/user"
	"github.com/brightops/pulse/internal/repository"
)

func TestUserCreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	u := createTestUser(t, db, "Alice", "Ames", 1)
	require.NotZero(t, u.ID)

	got, err := repo.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)
	assert.Equal(t, "Alice.Ames@example.com", got.Email)
	assert.Equal(t, 1, got.Tier)
	assert.True(t, got.IsActive)
}

func TestUserCreateWithoutEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	// Two users without email must not collide on the unique index.
	for _, name := range []string{"Bob", "Cara"} {
		u := &user.User{FirstName: name, LastName: "NoMail", Tier: 2, IsActive: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Create(ctx, u))
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	u := &user.User{FirstName: "Alice", LastName: "Ames", Email: "alice@example.com", Tier: 1, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	dup := &user.User{FirstName: "Alicia", LastName: "Ames", Email: "alice@example.com", Tier: 2, IsActive: true, CreatedAt: now, UpdatedAt: now}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserCreateRejectsBadTier(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	u := &user.User{FirstName: "Eve", LastName: "Egan", Tier: 9, IsActive: true, CreatedAt: now, UpdatedAt: now}
	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestUserListOrdersByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, "Zoe", "Zimmer", 2)
	createTestUser(t, db, "Alice", "Ames", 1)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].FirstName)
	assert.Equal(t, "Zoe", users[1].FirstName)
}

func TestUserUpdatePartial(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, db, "Alice", "Ames", 1)

	tier := 3
	updated, err := repo.Update(ctx, u.ID, user.Patch{Tier: &tier})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Tier)
	assert.Equal(t, "Alice", updated.FirstName)
}

func TestUserUpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	tier := 2
	_, err := repo.Update(context.Background(), 999, user.Patch{Tier: &tier})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDeactivateKeepsEntries(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	entryRepo := NewTimeEntryRepository(db)
	ctx := context.Background()

	u := createTestUser(t, db, "Alice", "Ames", 1)
	entry := &timeentry.Entry{UserID: u.ID, EntryDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Hours: 8}
	require.NoError(t, entryRepo.Upsert(ctx, entry))

	deactivated, err := repo.Deactivate(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Soft delete: the time entry survives.
	_, err = entryRepo.Get(ctx, entry.ID)
	require.NoError(t, err)
}

func TestUserTimeSummary(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	entryRepo := NewTimeEntryRepository(db)
	ctx := context.Background()

	u := createTestUser(t, db, "Alice", "Ames", 1)
	dates := []struct {
		day   time.Time
		hours float64
	}{
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 8},
		{time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), -8},
		{time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 4},
	}
	for _, d := range dates {
		require.NoError(t, entryRepo.Upsert(ctx, &timeentry.Entry{UserID: u.ID, EntryDate: d.day, Hours: d.hours}))
	}

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	days, err := repo.TimeSummary(ctx, u.ID, &start, &end)
	require.NoError(t, err)
	require.Len(t, days, 2)
	// Newest first; PTO hours come back negative.
	assert.Equal(t, -8.0, days[0].TotalHours)
	assert.Equal(t, 8.0, days[1].TotalHours)
}
