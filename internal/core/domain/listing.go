package domain

import "github.com/shopspring/decimal"

// ServiceListing is a service offered by a freelancer.
// Orders derive their freelancer from the listing owner.
type ServiceListing struct {
	ServiceID    string          `json:"serviceID"`
	FreelancerID string          `json:"freelancerID"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
