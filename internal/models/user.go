package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a marketplace participant row, including the financial
// totals maintained by the ledger repository.
type User struct {
	UserID       string          `db:"user_id"`
	Username     string          `db:"username"`
	PasswordHash string          `db:"password_hash"`
	Name         string          `db:"name"`
	Balance      decimal.Decimal `db:"balance"`
	Earnings     decimal.Decimal `db:"earnings"`
	Spending     decimal.Decimal `db:"spending"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
