package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/apperrors"
	"github.com/workhive/workhive_backend/internal/core/domain"
	portsrepo "github.com/workhive/workhive_backend/internal/core/ports/repositories"
	portssvc "github.com/workhive/workhive_backend/internal/core/ports/services"
	"github.com/workhive/workhive_backend/internal/dto"
)

type listingService struct {
	BaseService
	listingRepo portsrepo.ServiceListingRepository
}

// NewListingService creates a service listing service.
func NewListingService(listingRepo portsrepo.ServiceListingRepository) portssvc.ListingSvcFacade {
	return &listingService{listingRepo: listingRepo}
}

var _ portssvc.ListingSvcFacade = (*listingService)(nil)

func (s *listingService) CreateListing(ctx context.Context, req dto.CreateListingRequest, actorID string) (*domain.ServiceListing, error) {
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	listing := domain.ServiceListing{
		ServiceID:    uuid.NewString(),
		FreelancerID: actorID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.listingRepo.SaveListing(ctx, listing); err != nil {
		s.LogError(ctx, err, "failed to save listing", slog.String("freelancer_id", actorID))
		return nil, err
	}
	return &listing, nil
}

func (s *listingService) GetListingByID(ctx context.Context, serviceID string) (*domain.ServiceListing, error) {
	return s.listingRepo.FindListingByID(ctx, serviceID)
}
