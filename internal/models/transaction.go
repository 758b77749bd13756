package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted shape of a financial movement.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	OrderID           string          `db:"order_id"`
	ClientID          string          `db:"client_id"`
	FreelancerID      string          `db:"freelancer_id"`
	Amount            decimal.Decimal `db:"amount"`
	Type              string          `db:"type"`
	Status            string          `db:"status"`
	EscrowStatus      string          `db:"escrow_status"`
	PaymentIntentID   sql.NullString  `db:"payment_intent_id"`
	ChargeID          sql.NullString  `db:"charge_id"`
	PaymentMethod     sql.NullString  `db:"payment_method"`
	EscrowReleaseDate *time.Time      `db:"escrow_release_date"`
	Description       string          `db:"description"`
	AuditFields
}
