package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brightops/pulse/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the embedded schema.
func (db *DB) RunMigrations() error {
	data, err := migrations.FS.ReadFile("001_initial_schema.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if _, err := db.Exec(string(data)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const dateLayout = "2006-01-02"

// fmtDate formats a date-valued column for binding.
func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

// nullDate binds an optional date column.
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// parseDate converts a scanned date column back to a time value. Stored
// timestamps may carry a time component; only the date part is read.
func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	raw := s.String
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date %q: %w", s.String, err)
	}
	return &t, nil
}

// nullString binds an optional string-kinded column.
func nullString[T ~string](p *T) any {
	if p == nil {
		return nil
	}
	return string(*p)
}

// nullInt64 binds an optional integer column.
func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullFloat64 binds an optional float column.
func nullFloat64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullBool binds an optional boolean column.
func nullBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}
