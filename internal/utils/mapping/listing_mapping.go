package mapping

import (
	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/models"
)

// ToModelListing converts a domain ServiceListing to a model ServiceListing
func ToModelListing(d domain.ServiceListing) models.ServiceListing {
	return models.ServiceListing{
		ServiceID:    d.ServiceID,
		FreelancerID: d.FreelancerID,
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainListing converts a model ServiceListing to a domain ServiceListing
func ToDomainListing(m models.ServiceListing) domain.ServiceListing {
	return domain.ServiceListing{
		ServiceID:    m.ServiceID,
		FreelancerID: m.FreelancerID,
		Title:        m.Title,
		Description:  m.Description,
		Price:        m.Price,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
