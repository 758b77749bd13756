package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	"github.com/workhive/workhive_backend/internal/models"
	"github.com/workhive/workhive_backend/internal/utils/mapping"
)

type PgxListingRepository struct {
	db *pgxpool.Pool
}

func newPgxListingRepository(db *pgxpool.Pool) portsrepo.ServiceListingRepository {
	return &PgxListingRepository{db: db}
}

// Ensure PgxListingRepository implements portsrepo.ServiceListingRepository
var _ portsrepo.ServiceListingRepository = (*PgxListingRepository)(nil)

func (r *PgxListingRepository) SaveListing(ctx context.Context, listing domain.ServiceListing) error {
	m := mapping.ToModelListing(listing)
	query := `
        INSERT INTO service_listings (service_id, freelancer_id, title, description, price, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.ServiceID,
		m.FreelancerID,
		m.Title,
		m.Description,
		m.Price,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("listing %s: %w", listing.ServiceID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

func (r *PgxListingRepository) FindListingByID(ctx context.Context, serviceID string) (*domain.ServiceListing, error) {
	query := `
		SELECT service_id, freelancer_id, title, description, price, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM service_listings
		WHERE service_id = $1;
	`
	var m models.ServiceListing
	err := r.db.QueryRow(ctx, query, serviceID).Scan(
		&m.ServiceID,
		&m.FreelancerID,
		&m.Title,
		&m.Description,
		&m.Price,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find listing by ID %s: %w", serviceID, err)
	}
	listing := mapping.ToDomainListing(m)
	return &listing, nil
}
