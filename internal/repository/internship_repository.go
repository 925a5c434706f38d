package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eq3-dev/internship-api/internal/models"
)

const internshipColumns = "id, application_id, contract, student_evaluation, enterprise_evaluation, disabled, created_at, updated_at"

// InternshipRepository manages persistence for internships.
type InternshipRepository struct {
	db *sqlx.DB
}

// NewInternshipRepository constructs an InternshipRepository.
func NewInternshipRepository(db *sqlx.DB) *InternshipRepository {
	return &InternshipRepository{db: db}
}

// ListMissingEvaluation returns non-disabled internships whose evaluation of
// the given kind has not been filed yet.
func (r *InternshipRepository) ListMissingEvaluation(ctx context.Context, kind models.EvaluationKind) ([]models.Internship, error) {
	column := "student_evaluation"
	if kind == models.EvaluationEnterprise {
		column = "enterprise_evaluation"
	}
	query := fmt.Sprintf("SELECT %s FROM internships WHERE disabled = false AND %s IS NULL", internshipColumns, column)
	var internships []models.Internship
	if err := r.db.SelectContext(ctx, &internships, query); err != nil {
		return nil, fmt.Errorf("list internships missing evaluation: %w", err)
	}
	return internships, nil
}

// FindByID fetches an internship regardless of disabled state.
func (r *InternshipRepository) FindByID(ctx context.Context, id string) (*models.Internship, error) {
	query := fmt.Sprintf("SELECT %s FROM internships WHERE id = $1", internshipColumns)
	var internship models.Internship
	if err := r.db.GetContext(ctx, &internship, query, id); err != nil {
		return nil, err
	}
	return &internship, nil
}
