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

const studentColumns = "id, username, first_name, last_name, department, sessions, supervisors, cvs, signature, password_hash, disabled, created_at, updated_at"

// StudentRepository manages persistence for student records. Session sets,
// the supervisor map and the CV list live in JSONB columns.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListActive returns every non-disabled student.
func (r *StudentRepository) ListActive(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE disabled = false ORDER BY last_name, first_name", studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListActiveInSession returns non-disabled students enrolled in the session.
func (r *StudentRepository) ListActiveInSession(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE disabled = false AND sessions @> jsonb_build_array($1::text) ORDER BY last_name, first_name", studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, sessionLabel); err != nil {
		return nil, fmt.Errorf("list students in session: %w", err)
	}
	return students, nil
}

// ListWithoutSupervisor returns students of a department and session whose
// supervisor map is empty.
func (r *StudentRepository) ListWithoutSupervisor(ctx context.Context, department, sessionLabel string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students
        WHERE disabled = false AND department = $1 AND supervisors = '{}'::jsonb AND sessions @> jsonb_build_array($2::text)
        ORDER BY last_name, first_name`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, department, sessionLabel); err != nil {
		return nil, fmt.Errorf("list students without supervisor: %w", err)
	}
	return students, nil
}

// ListBySupervisor returns students assigned to the supervisor for the session.
func (r *StudentRepository) ListBySupervisor(ctx context.Context, supervisorID, sessionLabel string) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE disabled = false AND supervisors ->> $1 = $2 ORDER BY last_name, first_name", studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, sessionLabel, supervisorID); err != nil {
		return nil, fmt.Errorf("list students by supervisor: %w", err)
	}
	return students, nil
}

// ListWithoutCV returns students in the session with an empty CV list.
func (r *StudentRepository) ListWithoutCV(ctx context.Context, sessionLabel string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students
        WHERE disabled = false AND cvs = '[]'::jsonb AND sessions @> jsonb_build_array($1::text)
        ORDER BY last_name, first_name`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, sessionLabel); err != nil {
		return nil, fmt.Errorf("list students without cv: %w", err)
	}
	return students, nil
}

// FindByID fetches a student regardless of disabled state.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDs fetches students by id, keyed for in-memory joins.
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Student, error) {
	result := make(map[string]models.Student, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM students WHERE id IN (?)", studentColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build students lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("lookup students: %w", err)
	}
	for _, s := range students {
		result[s.ID] = s
	}
	return result, nil
}

// FindActiveByUsername fetches a non-disabled student by username.
func (r *StudentRepository) FindActiveByUsername(ctx context.Context, username string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE username = $1 AND disabled = false", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, username); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, username, first_name, last_name, department, sessions, supervisors, cvs, signature, password_hash, disabled, created_at, updated_at)
        VALUES (:id, :username, :first_name, :last_name, :department, :sessions, :supervisors, :cvs, :signature, :password_hash, :disabled, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Save persists mutable student state (supervisor map, CV list, signature).
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET sessions = :sessions, supervisors = :supervisors, cvs = :cvs, signature = :signature, disabled = :disabled, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DistinctSessions returns the union of every active student's session set.
func (r *StudentRepository) DistinctSessions(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT value FROM students, jsonb_array_elements_text(sessions) AS value WHERE disabled = false`
	var sessions []string
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("distinct student sessions: %w", err)
	}
	return sessions, nil
}
