package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Order is the persisted shape of a marketplace order.
// Nullable reference columns use sql.Null types; the domain layer exposes
// them as plain identifiers with "" meaning unset.
type Order struct {
	OrderID            string          `db:"order_id"`
	ServiceID          string          `db:"service_id"`
	ClientID           string          `db:"client_id"`
	FreelancerID       string          `db:"freelancer_id"`
	Price              decimal.Decimal `db:"price"`
	Deadline           time.Time       `db:"deadline"`
	Description        string          `db:"description"`
	Status             string          `db:"status"`
	TransactionID      sql.NullString  `db:"transaction_id"`
	ConversationID     sql.NullString  `db:"conversation_id"`
	ClientReviewID     sql.NullString  `db:"client_review_id"`
	FreelancerReviewID sql.NullString  `db:"freelancer_review_id"`
	DisputeRisk        float64         `db:"dispute_risk"`
	FlaggedForReview   bool            `db:"flagged_for_review"`
	AuditFields
}
