package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIntent is the persisted state of a simulated gateway intent.
// Backing the gateway with a table keeps in-flight intents across restarts.
type PaymentIntent struct {
	IntentID  string          `db:"intent_id"`
	Amount    decimal.Decimal `db:"amount"`
	Currency  string          `db:"currency"`
	Status    string          `db:"status"`
	Refunded  bool            `db:"refunded"`
	CreatedAt time.Time       `db:"created_at"`
}
