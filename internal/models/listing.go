package models

import "github.com/shopspring/decimal"

// ServiceListing is the persisted shape of a freelancer service offering.
type ServiceListing struct {
	ServiceID    string          `db:"service_id"`
	FreelancerID string          `db:"freelancer_id"`
	Title        string          `db:"title"`
	Description  string          `db:"description"`
	Price        decimal.Decimal `db:"price"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
