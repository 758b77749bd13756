package mapping

import (
	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:            d.OrderID,
		ServiceID:          d.ServiceID,
		ClientID:           d.ClientID,
		FreelancerID:       d.FreelancerID,
		Price:              d.Price,
		Deadline:           d.Deadline,
		Description:        d.Description,
		Status:             string(d.Status),
		TransactionID:      NullString(d.TransactionID),
		ConversationID:     NullString(d.ConversationID),
		ClientReviewID:     NullString(d.ClientReviewID),
		FreelancerReviewID: NullString(d.FreelancerReviewID),
		DisputeRisk:        d.DisputeRisk,
		FlaggedForReview:   d.FlaggedForReview,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:            m.OrderID,
		ServiceID:          m.ServiceID,
		ClientID:           m.ClientID,
		FreelancerID:       m.FreelancerID,
		Price:              m.Price,
		Deadline:           m.Deadline,
		Description:        m.Description,
		Status:             domain.OrderStatus(m.Status),
		TransactionID:      FromNullString(m.TransactionID),
		ConversationID:     FromNullString(m.ConversationID),
		ClientReviewID:     FromNullString(m.ClientReviewID),
		FreelancerReviewID: FromNullString(m.FreelancerReviewID),
		DisputeRisk:        m.DisputeRisk,
		FlaggedForReview:   m.FlaggedForReview,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrderSlice converts a slice of model Orders to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
