package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eq3-dev/internship-api/internal/models"
)

const applicationColumns = "id, student_id, offer_id, status, interview_date, disabled, created_at, updated_at"

// ApplicationRepository manages persistence for internship applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// ListActive returns every non-disabled application.
func (r *ApplicationRepository) ListActive(ctx context.Context) ([]models.InternshipApplication, error) {
	query := fmt.Sprintf("SELECT %s FROM internship_applications WHERE disabled = false", applicationColumns)
	var applications []models.InternshipApplication
	if err := r.db.SelectContext(ctx, &applications, query); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

// ListWithInterviewDate returns non-disabled applications carrying an
// interview date, whatever the status.
func (r *ApplicationRepository) ListWithInterviewDate(ctx context.Context) ([]models.InternshipApplication, error) {
	query := fmt.Sprintf("SELECT %s FROM internship_applications WHERE disabled = false AND interview_date IS NOT NULL", applicationColumns)
	var applications []models.InternshipApplication
	if err := r.db.SelectContext(ctx, &applications, query); err != nil {
		return nil, fmt.Errorf("list applications with interview date: %w", err)
	}
	return applications, nil
}

// ListWaitingWithInterviewAfter returns non-disabled WAITING applications
// whose interview date is strictly after the given instant.
func (r *ApplicationRepository) ListWaitingWithInterviewAfter(ctx context.Context, after time.Time) ([]models.InternshipApplication, error) {
	query := fmt.Sprintf("SELECT %s FROM internship_applications WHERE disabled = false AND status = $1 AND interview_date > $2", applicationColumns)
	var applications []models.InternshipApplication
	if err := r.db.SelectContext(ctx, &applications, query, models.StatusWaiting, after); err != nil {
		return nil, fmt.Errorf("list waiting applications: %w", err)
	}
	return applications, nil
}

// FindByIDs fetches applications by id, keyed for in-memory joins.
func (r *ApplicationRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.InternshipApplication, error) {
	result := make(map[string]models.InternshipApplication, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM internship_applications WHERE id IN (?)", applicationColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build applications lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var applications []models.InternshipApplication
	if err := r.db.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, fmt.Errorf("lookup applications: %w", err)
	}
	for _, a := range applications {
		result[a.ID] = a
	}
	return result, nil
}
