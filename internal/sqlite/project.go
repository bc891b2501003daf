package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelect = `
	SELECT
		p.id, p.project_name, p.tier1_owner_id, p.tier2_owner_id, p.tier3_owners,
		p.status, p.health, p.arr_value, p.close_date, p.start_date,
		p.risk_description, p.ask_description, p.impact_description, p.is_closed,
		COALESCE(u1.first_name || ' ' || u1.last_name, '') AS tier_1_name,
		COALESCE(u2.first_name || ' ' || u2.last_name, '') AS tier_2_name,
		COALESCE(
			(SELECT note_text FROM project_notes pn
			 WHERE pn.project_id = p.id
			 ORDER BY pn.created_at DESC, pn.id DESC LIMIT 1),
			''
		) AS latest_note,
		p.created_at, p.updated_at
	FROM projects p
	LEFT JOIN users u1 ON p.tier1_owner_id = u1.id
	LEFT JOIN users u2 ON p.tier2_owner_id = u2.id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		p                sql.NullInt64
		tier1, tier2     sql.NullInt64
		owners           sql.NullString
		status, health   string
		arr              sql.NullFloat64
		closeD, startD   sql.NullTime
		risk, ask, impct sql.NullString
		proj             project.Project
	)

	err := row.Scan(
		&p, &proj.Name, &tier1, &tier2, &owners,
		&status, &health, &arr, &closeD, &startD,
		&risk, &ask, &impct, &proj.IsClosed,
		&proj.Tier1Name, &proj.Tier2Name, &proj.LatestNote,
		&proj.CreatedAt, &proj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	proj.ID = p.Int64
	proj.Status = project.Status(status)
	proj.Health = project.Health(health)
	proj.Tier3Owners = project.DecodeTier3Owners(owners.String)
	if tier1.Valid {
		proj.Tier1OwnerID = &tier1.Int64
	}
	if tier2.Valid {
		proj.Tier2OwnerID = &tier2.Int64
	}
	if arr.Valid {
		proj.ARRValue = &arr.Float64
	}
	if closeD.Valid {
		proj.CloseDate = &closeD.Time
	}
	if startD.Valid {
		proj.StartDate = &startD.Time
	}
	proj.RiskDescription = risk.String
	proj.AskDescription = ask.String
	proj.ImpactDescription = impct.String

	return &proj, nil
}

// Create inserts a new project and fills its generated ID
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (
			project_name, tier1_owner_id, tier2_owner_id, tier3_owners,
			status, health, arr_value, close_date, start_date, is_closed,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		nullInt64(proj.Tier1OwnerID),
		nullInt64(proj.Tier2OwnerID),
		project.EncodeTier3Owners(proj.Tier3Owners),
		string(proj.Status),
		string(proj.Health),
		nullFloat64(proj.ARRValue),
		nullDate(proj.CloseDate),
		nullDate(proj.StartDate),
		proj.IsClosed,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isCheckViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}
	proj.ID = id

	return nil
}

// Get retrieves a project by ID with owner names and the latest note
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, projectSelect+" WHERE p.id = ?", id)

	proj, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List returns projects matching the given filters, newest first
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	query := projectSelect + " WHERE 1=1"
	var args []any

	if opts.Status != nil {
		query += " AND p.status = ?"
		args = append(args, string(*opts.Status))
	}
	if opts.Health != nil {
		query += " AND p.health = ?"
		args = append(args, string(*opts.Health))
	}
	if opts.OwnerID != nil {
		query += " AND (p.tier1_owner_id = ? OR p.tier2_owner_id = ?)"
		args = append(args, *opts.OwnerID, *opts.OwnerID)
	}

	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
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

// Update applies a partial update; nil patch fields keep their stored value
func (r *ProjectRepository) Update(ctx context.Context, id int64, patch project.Patch) (*project.Project, error) {
	var owners any
	if patch.Tier3Owners != nil {
		owners = project.EncodeTier3Owners(*patch.Tier3Owners)
	}

	query := `
		UPDATE projects
		SET
			project_name = COALESCE(?, project_name),
			tier1_owner_id = COALESCE(?, tier1_owner_id),
			tier2_owner_id = COALESCE(?, tier2_owner_id),
			tier3_owners = COALESCE(?, tier3_owners),
			status = COALESCE(?, status),
			health = COALESCE(?, health),
			arr_value = COALESCE(?, arr_value),
			close_date = COALESCE(?, close_date),
			start_date = COALESCE(?, start_date),
			risk_description = COALESCE(?, risk_description),
			ask_description = COALESCE(?, ask_description),
			impact_description = COALESCE(?, impact_description),
			is_closed = COALESCE(?, is_closed),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullString(patch.Name),
		nullInt64(patch.Tier1OwnerID),
		nullInt64(patch.Tier2OwnerID),
		owners,
		nullString(patch.Status),
		nullString(patch.Health),
		nullFloat64(patch.ARRValue),
		nullDate(patch.CloseDate),
		nullDate(patch.StartDate),
		nullString(patch.RiskDescription),
		nullString(patch.AskDescription),
		nullString(patch.ImpactDescription),
		nullBool(patch.IsClosed),
		id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrForeignKeyViolation
		}
		if isCheckViolation(err) {
			return nil, repository.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
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

// Delete removes a project; dependent rows cascade
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

// AddNote inserts a project note and fills its generated ID and timestamp
func (r *ProjectRepository) AddNote(ctx context.Context, note *project.Note) error {
	query := `
		INSERT INTO project_notes (project_id, note_text, created_by)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, note.ProjectID, note.NoteText, nullInt64(note.CreatedBy))
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add project note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read note id: %w", err)
	}
	note.ID = id

	row := r.db.QueryRowContext(ctx, "SELECT created_at FROM project_notes WHERE id = ?", id)
	if err := row.Scan(&note.CreatedAt); err != nil {
		return fmt.Errorf("failed to read note timestamp: %w", err)
	}

	return nil
}

// ListNotes returns a project's notes, newest first
func (r *ProjectRepository) ListNotes(ctx context.Context, projectID int64) ([]project.Note, error) {
	query := `
		SELECT
			pn.id, pn.project_id, pn.note_text, pn.created_by,
			COALESCE(u.first_name || ' ' || u.last_name, '') AS created_by_name,
			pn.created_at
		FROM project_notes pn
		LEFT JOIN users u ON pn.created_by = u.id
		WHERE pn.project_id = ?
		ORDER BY pn.created_at DESC, pn.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project notes: %w", err)
	}
	defer rows.Close()

	notes := []project.Note{}
	for rows.Next() {
		var (
			note      project.Note
			createdBy sql.NullInt64
		)
		err := rows.Scan(&note.ID, &note.ProjectID, &note.NoteText, &createdBy, &note.CreatedByName, &note.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project note: %w", err)
		}
		if createdBy.Valid {
			note.CreatedBy = &createdBy.Int64
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, nil
}

// ListCustomFields returns a project's ad-hoc fields
func (r *ProjectRepository) ListCustomFields(ctx context.Context, projectID int64) ([]project.CustomField, error) {
	query := `
		SELECT field_name, COALESCE(field_value, ''), COALESCE(field_type, '')
		FROM project_custom_fields
		WHERE project_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom fields: %w", err)
	}
	defer rows.Close()

	fields := []project.CustomField{}
	for rows.Next() {
		var f project.CustomField
		if err := rows.Scan(&f.FieldName, &f.FieldValue, &f.FieldType); err != nil {
			return nil, fmt.Errorf("failed to scan custom field: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom field rows: %w", err)
	}

	return fields, nil
}

// AddHealthChange appends a health history entry
func (r *ProjectRepository) AddHealthChange(ctx context.Context, change *project.HealthChange) error {
	query := `
		INSERT INTO project_health_history (project_id, health, changed_by, change_reason)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		change.ProjectID,
		string(change.Health),
		nullInt64(change.ChangedBy),
		change.ChangeReason,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add health change: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read health change id: %w", err)
	}
	change.ID = id

	return nil
}

// ListHealthHistory returns a project's health changes, newest first
func (r *ProjectRepository) ListHealthHistory(ctx context.Context, projectID int64) ([]project.HealthChange, error) {
	query := `
		SELECT
			phh.id, phh.project_id, phh.health, phh.changed_by,
			COALESCE(u.first_name || ' ' || u.last_name, '') AS changed_by_name,
			COALESCE(phh.change_reason, ''), phh.created_at
		FROM project_health_history phh
		LEFT JOIN users u ON phh.changed_by = u.id
		WHERE phh.project_id = ?
		ORDER BY phh.created_at DESC, phh.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list health history: %w", err)
	}
	defer rows.Close()

	history := []project.HealthChange{}
	for rows.Next() {
		var (
			change    project.HealthChange
			health    string
			changedBy sql.NullInt64
		)
		err := rows.Scan(&change.ID, &change.ProjectID, &health, &changedBy, &change.ChangedByName, &change.ChangeReason, &change.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health change: %w", err)
		}
		change.Health = project.Health(health)
		if changedBy.Valid {
			change.ChangedBy = &changedBy.Int64
		}
		history = append(history, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health history rows: %w", err)
	}

	return history, nil
}
