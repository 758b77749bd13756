package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a marketplace participant. The same user may act as a
// client on some orders and a freelancer on others.
//
// Balance, Earnings and Spending are mutated exclusively by the ledger
// repository as a side effect of transaction status transitions.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`

	Balance  decimal.Decimal `json:"balance"`  // withdrawable funds (freelancer semantics)
	Earnings decimal.Decimal `json:"earnings"` // lifetime freelancer income
	Spending decimal.Decimal `json:"spending"` // lifetime client expenditure

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
