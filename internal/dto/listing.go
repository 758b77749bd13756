package dto

import (
	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

// CreateListingRequest defines the data required to publish a service listing.
type CreateListingRequest struct {
	Title       string          `json:"title" binding:"required,max=140"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// ListingResponse is the externally visible listing shape.
type ListingResponse struct {
	ServiceID    string          `json:"serviceID"`
	FreelancerID string          `json:"freelancerID"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"isActive"`
}

// ToListingResponse converts a domain.ServiceListing to its response DTO.
func ToListingResponse(l *domain.ServiceListing) ListingResponse {
	return ListingResponse{
		ServiceID:    l.ServiceID,
		FreelancerID: l.FreelancerID,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		IsActive:     l.IsActive,
	}
}
