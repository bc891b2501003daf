package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brightops/pulse/internal/domain/user"
	"github.com/brightops/pulse/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT id, first_name, last_name, COALESCE(email, ''), tier, is_active, created_at, updated_at
	FROM users
`

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Tier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and fills its generated ID
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (first_name, last_name, email, tier, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var email any
	if u.Email != "" {
		email = u.Email
	}

	result, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, email, u.Tier, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	u.ID = id

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+" WHERE id = ?", id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// List returns all users ordered by name
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+" ORDER BY first_name, last_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Update applies a partial update; nil patch fields keep their stored value
func (r *UserRepository) Update(ctx context.Context, id int64, patch user.Patch) (*user.User, error) {
	var tier any
	if patch.Tier != nil {
		tier = *patch.Tier
	}

	query := `
		UPDATE users
		SET
			first_name = COALESCE(?, first_name),
			last_name = COALESCE(?, last_name),
			email = COALESCE(?, email),
			tier = COALESCE(?, tier),
			is_active = COALESCE(?, is_active),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullString(patch.FirstName),
		nullString(patch.LastName),
		nullString(patch.Email),
		tier,
		nullBool(patch.IsActive),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		if isCheckViolation(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Deactivate soft-deletes a user by clearing is_active
func (r *UserRepository) Deactivate(ctx context.Context, id int64) (*user.User, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return r.Get(ctx, id)
}

// TimeSummary returns per-day hours for one user in an optional range,
// newest first
func (r *UserRepository) TimeSummary(ctx context.Context, id int64, start, end *time.Time) ([]user.DaySummary, error) {
	query := `
		SELECT entry_date, hours
		FROM time_entries
		WHERE user_id = ?
	`
	args := []any{id}

	if start != nil {
		query += " AND entry_date >= ?"
		args = append(args, fmtDate(*start))
	}
	if end != nil {
		query += " AND entry_date <= ?"
		args = append(args, fmtDate(*end))
	}
	query += " ORDER BY entry_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time summary: %w", err)
	}
	defer rows.Close()

	days := []user.DaySummary{}
	for rows.Next() {
		var d user.DaySummary
		if err := rows.Scan(&d.EntryDate, &d.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan time summary row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time summary rows: %w", err)
	}

	return days, nil
}
