package mapping

import (
	"github.com/workhive/workhive_backend/internal/core/domain"
	"github.com/workhive/workhive_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		OrderID:           d.OrderID,
		ClientID:          d.ClientID,
		FreelancerID:      d.FreelancerID,
		Amount:            d.Amount,
		Type:              string(d.Type),
		Status:            string(d.Status),
		EscrowStatus:      string(d.EscrowStatus),
		PaymentIntentID:   NullString(d.PaymentIntentID),
		ChargeID:          NullString(d.ChargeID),
		PaymentMethod:     NullString(d.PaymentMethod),
		EscrowReleaseDate: d.EscrowReleaseDate,
		Description:       d.Description,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		OrderID:           m.OrderID,
		ClientID:          m.ClientID,
		FreelancerID:      m.FreelancerID,
		Amount:            m.Amount,
		Type:              domain.TransactionType(m.Type),
		Status:            domain.TransactionStatus(m.Status),
		EscrowStatus:      domain.EscrowStatus(m.EscrowStatus),
		PaymentIntentID:   FromNullString(m.PaymentIntentID),
		ChargeID:          FromNullString(m.ChargeID),
		PaymentMethod:     FromNullString(m.PaymentMethod),
		EscrowReleaseDate: m.EscrowReleaseDate,
		Description:       m.Description,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
