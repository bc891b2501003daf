package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/repository"
)

// TimeEntryRepository implements timeentry.Repository for SQLite
type TimeEntryRepository struct {
	db *DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const entrySelect = `
	SELECT
		te.id, te.user_id, te.entry_date, te.hours, COALESCE(te.description, ''),
		u.first_name || ' ' || u.last_name AS user_name,
		te.created_at, te.updated_at
	FROM time_entries te
	JOIN users u ON te.user_id = u.id
`

func scanEntry(row rowScanner) (*timeentry.Entry, error) {
	var e timeentry.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Hours, &e.Description, &e.UserName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Get retrieves a time entry by ID with the user name joined in
func (r *TimeEntryRepository) Get(ctx context.Context, id int64) (*timeentry.Entry, error) {
	row := r.db.QueryRowContext(ctx, entrySelect+" WHERE te.id = ?", id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	return entry, nil
}

// List returns time entries matching the given filters, newest first
func (r *TimeEntryRepository) List(ctx context.Context, opts timeentry.ListOptions) ([]timeentry.Entry, error) {
	query := entrySelect + " WHERE 1=1"
	var args []any

	if opts.UserID != nil {
		query += " AND te.user_id = ?"
		args = append(args, *opts.UserID)
	}
	if opts.StartDate != nil {
		query += " AND te.entry_date >= ?"
		args = append(args, fmtDate(*opts.StartDate))
	}
	if opts.EndDate != nil {
		query += " AND te.entry_date <= ?"
		args = append(args, fmtDate(*opts.EndDate))
	}

	query += " ORDER BY te.entry_date DESC, u.first_name, u.last_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}

	return entries, nil
}

const upsertQuery = `
	INSERT INTO time_entries (user_id, entry_date, hours, description)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id, entry_date)
	DO UPDATE SET
		hours = excluded.hours,
		description = COALESCE(excluded.description, description),
		updated_at = CURRENT_TIMESTAMP
`

// Upsert inserts or replaces the entry for (user, date) and reloads the row
func (r *TimeEntryRepository) Upsert(ctx context.Context, entry *timeentry.Entry) error {
	var desc any
	if entry.Description != "" {
		desc = entry.Description
	}

	_, err := r.db.ExecContext(ctx, upsertQuery,
		entry.UserID, fmtDate(entry.EntryDate), entry.Hours, desc)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to upsert time entry: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		entrySelect+" WHERE te.user_id = ? AND te.entry_date = ?",
		entry.UserID, fmtDate(entry.EntryDate))
	saved, err := scanEntry(row)
	if err != nil {
		return fmt.Errorf("failed to reload time entry: %w", err)
	}
	*entry = *saved

	return nil
}

// BulkUpsert applies a batch of entries in a single transaction: either every
// entry commits or none does
func (r *TimeEntryRepository) BulkUpsert(ctx context.Context, entries []timeentry.Entry) ([]timeentry.Entry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saved := make([]timeentry.Entry, 0, len(entries))
	for _, entry := range entries {
		var desc any
		if entry.Description != "" {
			desc = entry.Description
		}

		_, err := tx.ExecContext(ctx, upsertQuery,
			entry.UserID, fmtDate(entry.EntryDate), entry.Hours, desc)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, repository.ErrForeignKeyViolation
			}
			return nil, fmt.Errorf("failed to upsert time entry: %w", err)
		}

		row := tx.QueryRowContext(ctx,
			entrySelect+" WHERE te.user_id = ? AND te.entry_date = ?",
			entry.UserID, fmtDate(entry.EntryDate))
		reloaded, err := scanEntry(row)
		if err != nil {
			return nil, fmt.Errorf("failed to reload time entry: %w", err)
		}
		saved = append(saved, *reloaded)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return saved, nil
}

// Update applies a partial update; nil patch fields keep their stored value
func (r *TimeEntryRepository) Update(ctx context.Context, id int64, patch timeentry.Patch) (*timeentry.Entry, error) {
	query := `
		UPDATE time_entries
		SET
			hours = COALESCE(?, hours),
			description = COALESCE(?, description),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullFloat64(patch.Hours),
		nullString(patch.Description),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
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

// Delete removes a time entry
func (r *TimeEntryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
