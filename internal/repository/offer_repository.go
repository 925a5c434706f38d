package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eq3-dev/internship-api/internal/models"
)

const offerColumns = "id, session, monitor_id, valid, document, disabled, created_at, updated_at"

// OfferRepository manages persistence for internship offers.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository constructs an OfferRepository.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// ListActiveByValidity returns non-disabled offers with the requested validity flag.
func (r *OfferRepository) ListActiveByValidity(ctx context.Context, valid bool) ([]models.InternshipOffer, error) {
	query := fmt.Sprintf("SELECT %s FROM internship_offers WHERE disabled = false AND valid = $1", offerColumns)
	var offers []models.InternshipOffer
	if err := r.db.SelectContext(ctx, &offers, query, valid); err != nil {
		return nil, fmt.Errorf("list offers by validity: %w", err)
	}
	return offers, nil
}

// FindByID fetches an offer regardless of disabled state.
func (r *OfferRepository) FindByID(ctx context.Context, id string) (*models.InternshipOffer, error) {
	query := fmt.Sprintf("SELECT %s FROM internship_offers WHERE id = $1", offerColumns)
	var offer models.InternshipOffer
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByIDs fetches offers by id, keyed for in-memory joins.
func (r *OfferRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.InternshipOffer, error) {
	result := make(map[string]models.InternshipOffer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM internship_offers WHERE id IN (?)", offerColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build offers lookup: %w", err)
	}
	query = r.db.Rebind(query)
	var offers []models.InternshipOffer
	if err := r.db.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("lookup offers: %w", err)
	}
	for _, o := range offers {
		result[o.ID] = o
	}
	return result, nil
}

// DistinctSessionsByMonitor returns the distinct session labels of the
// monitor's non-disabled offers.
func (r *OfferRepository) DistinctSessionsByMonitor(ctx context.Context, monitorID string) ([]string, error) {
	const query = `SELECT DISTINCT session FROM internship_offers WHERE monitor_id = $1 AND disabled = false`
	var sessions []string
	if err := r.db.SelectContext(ctx, &sessions, query, monitorID); err != nil {
		return nil, fmt.Errorf("distinct offer sessions: %w", err)
	}
	return sessions, nil
}
