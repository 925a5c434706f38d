package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eq3-dev/internship-api/internal/models"
)

const staffColumns = "id, username, first_name, last_name, role, sessions, signature, password_hash, disabled, created_at, updated_at"

// StaffRepository persists supervisors, monitors and internship managers in a
// single table keyed by role.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// ListSupervisorsInSession returns non-disabled supervisors active in the session.
func (r *StaffRepository) ListSupervisorsInSession(ctx context.Context, sessionLabel string) ([]models.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff
        WHERE disabled = false AND role = $1 AND sessions @> jsonb_build_array($2::text)
        ORDER BY last_name, first_name`, staffColumns)
	var staff []models.Staff
	if err := r.db.SelectContext(ctx, &staff, query, models.RoleSupervisor, sessionLabel); err != nil {
		return nil, fmt.Errorf("list supervisors in session: %w", err)
	}
	return staff, nil
}

// FindByID fetches a staff member regardless of disabled state.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff WHERE id = $1", staffColumns)
	var member models.Staff
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// FindActiveByRoleAndUsername fetches the non-disabled account for the role.
func (r *StaffRepository) FindActiveByRoleAndUsername(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
	query := fmt.Sprintf("SELECT %s FROM staff WHERE role = $1 AND username = $2 AND disabled = false", staffColumns)
	var member models.Staff
	if err := r.db.GetContext(ctx, &member, query, role, username); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new staff account.
func (r *StaffRepository) Create(ctx context.Context, member *models.Staff) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO staff (id, username, first_name, last_name, role, sessions, signature, password_hash, disabled, created_at, updated_at)
        VALUES (:id, :username, :first_name, :last_name, :role, :sessions, :signature, :password_hash, :disabled, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// SaveSignature overwrites the stored signature image for the account.
func (r *StaffRepository) SaveSignature(ctx context.Context, id string, signature []byte) error {
	const query = `UPDATE staff SET signature = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, signature, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save staff signature: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
