package services

import (
	"context"

	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/dto"
)

// ListingSvcFacade manages freelancer service offerings.
type ListingSvcFacade interface {
	// CreateListing creates a service listing owned by the actor.
	CreateListing(ctx context.Context, req dto.CreateListingRequest, actorID string) (*domain.ServiceListing, error)

	// GetListingByID retrieves a listing.
	GetListingByID(ctx context.Context, serviceID string) (*domain.ServiceListing, error)
}
