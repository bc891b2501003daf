package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/domain/timeentry"
)

// ReportRepository implements report.Repository for SQLite. It only
// reads; all aggregation math happens in the report engine.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const activeStatusFilter = " WHERE p.status IN ('in_progress', 'active', 'ongoing', 'delivering')"

// ListActiveProjects returns active-status projects with owner names and the
// latest note joined in
func (r *ReportRepository) ListActiveProjects(ctx context.Context) ([]project.Project, error) {
	return r.queryProjects(ctx, projectSelect+activeStatusFilter+" ORDER BY p.id")
}

// ExportProjects returns every project regardless of status, newest first
func (r *ReportRepository) ExportProjects(ctx context.Context) ([]project.Project, error) {
	return r.queryProjects(ctx, projectSelect+" ORDER BY p.created_at DESC, p.id DESC")
}

func (r *ReportRepository) queryProjects(ctx context.Context, query string) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// ListActiveUsersWithHours returns every active user with worked hours, PTO
// hours and distinct days worked inside [start, end]. Users without entries
// appear with zeroes.
func (r *ReportRepository) ListActiveUsersWithHours(ctx context.Context, start, end time.Time) ([]report.UserHours, error) {
	query := `
		SELECT
			u.id,
			u.first_name || ' ' || u.last_name AS user_name,
			u.tier,
			COALESCE(SUM(CASE WHEN te.hours > 0 THEN te.hours ELSE 0 END), 0) AS total_hours,
			COALESCE(SUM(CASE WHEN te.hours < 0 THEN -te.hours ELSE 0 END), 0) AS pto_hours,
			COUNT(DISTINCT CASE WHEN te.hours > 0 THEN te.entry_date END) AS days_worked
		FROM users u
		LEFT JOIN time_entries te ON u.id = te.user_id
			AND te.entry_date >= ?
			AND te.entry_date <= ?
		WHERE u.is_active = 1
		GROUP BY u.id, u.first_name, u.last_name, u.tier
		ORDER BY total_hours DESC, u.first_name, u.last_name
	`

	rows, err := r.db.QueryContext(ctx, query, fmtDate(start), fmtDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query user hours: %w", err)
	}
	defer rows.Close()

	var result []report.UserHours
	for rows.Next() {
		var uh report.UserHours
		err := rows.Scan(&uh.UserID, &uh.UserName, &uh.Tier, &uh.TotalHours, &uh.PTOHours, &uh.DaysWorked)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user hours: %w", err)
		}
		result = append(result, uh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user hours rows: %w", err)
	}

	return result, nil
}

// TimeSummaryByUser returns per-user hour totals inside [start, end]
func (r *ReportRepository) TimeSummaryByUser(ctx context.Context, start, end time.Time) ([]report.TimeSummaryRow, error) {
	query := `
		SELECT
			u.first_name || ' ' || u.last_name AS name,
			COALESCE(SUM(te.hours), 0) AS total_hours,
			COUNT(DISTINCT te.entry_date) AS days_worked
		FROM users u
		LEFT JOIN time_entries te ON te.user_id = u.id
			AND te.entry_date >= ?
			AND te.entry_date <= ?
		WHERE u.is_active = 1
		GROUP BY u.id, u.first_name, u.last_name
		ORDER BY total_hours DESC, u.first_name, u.last_name
	`

	rows, err := r.db.QueryContext(ctx, query, fmtDate(start), fmtDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query time summary: %w", err)
	}
	defer rows.Close()

	var result []report.TimeSummaryRow
	for rows.Next() {
		var row report.TimeSummaryRow
		if err := rows.Scan(&row.Name, &row.TotalHours, &row.DaysWorked); err != nil {
			return nil, fmt.Errorf("failed to scan time summary row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time summary rows: %w", err)
	}

	return result, nil
}

// HealthTrends returns daily health-change counts for the trailing window
func (r *ReportRepository) HealthTrends(ctx context.Context, days int) ([]report.HealthTrend, error) {
	query := `
		SELECT DATE(created_at) AS day, health, COUNT(*) AS count
		FROM project_health_history
		WHERE created_at >= DATE('now', ?)
		GROUP BY DATE(created_at), health
		ORDER BY day DESC, health
	`

	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("failed to query health trends: %w", err)
	}
	defer rows.Close()

	var trends []report.HealthTrend
	for rows.Next() {
		var (
			trend  report.HealthTrend
			health string
		)
		if err := rows.Scan(&trend.Date, &health, &trend.Count); err != nil {
			return nil, fmt.Errorf("failed to scan health trend: %w", err)
		}
		trend.Health = project.Health(health)
		trends = append(trends, trend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health trend rows: %w", err)
	}

	return trends, nil
}

// ExportTimeEntries returns entries with user names in an optional range
func (r *ReportRepository) ExportTimeEntries(ctx context.Context, start, end *time.Time) ([]timeentry.Entry, error) {
	query := entrySelect + " WHERE 1=1"
	var args []any

	if start != nil {
		query += " AND te.entry_date >= ?"
		args = append(args, fmtDate(*start))
	}
	if end != nil {
		query += " AND te.entry_date <= ?"
		args = append(args, fmtDate(*end))
	}
	query += " ORDER BY te.entry_date DESC, u.first_name, u.last_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
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
