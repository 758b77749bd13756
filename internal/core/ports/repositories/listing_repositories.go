package repositories

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// ServiceListingRepository persists freelancer service offerings.
type ServiceListingRepository interface {
	// SaveListing persists a new service listing.
	SaveListing(ctx context.Context, listing domain.ServiceListing) error

	// FindListingByID retrieves a listing by its ID.
	FindListingByID(ctx context.Context, serviceID string) (*domain.ServiceListing, error)
}
