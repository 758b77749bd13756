package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive/workhive_backend/internal/apperrors"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	"github.com/workhive/workhive_backend/internal/utils"
)

// SimulatedGateway implements the PaymentGateway contract against an injected
// IntentStore, standing in for a provider like Stripe. Latency is simulated
// so callers exercise their timeout handling; a context expiring mid-call
// surfaces as ErrGatewayUnavailable before any state change is observable.
type SimulatedGateway struct {
	store   portsgw.IntentStore
	latency time.Duration
}

// Ensure SimulatedGateway implements the PaymentGateway contract.
var _ portsgw.PaymentGateway = (*SimulatedGateway)(nil)

// NewSimulatedGateway creates a gateway backed by the given intent store.
// latency is the simulated provider round-trip per call; zero disables it.
func NewSimulatedGateway(store portsgw.IntentStore, latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{store: store, latency: latency}
}

// roundTrip simulates provider latency while honoring context cancellation.
func (g *SimulatedGateway) roundTrip(ctx context.Context) error {
	if g.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
		}
		return nil
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func newExternalID(prefix string) string {
	id, err := utils.GenerateSecureRandomString(12)
	if err != nil {
		// crypto/rand failing means the process is in serious trouble; fall
		// back to a timestamp so the gateway still produces unique-ish ids.
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return prefix + "_" + id
}

// Authorize creates a payment intent with no side effects beyond intent creation.
func (g *SimulatedGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, meta portsgw.Metadata) (*portsgw.PaymentIntent, error) {
	if err := g.roundTrip(ctx); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if currency == "" {
		currency = "USD"
	}

	intent := portsgw.PaymentIntent{
		IntentID: newExternalID("pi"),
		Amount:   amount,
		Currency: currency,
		Status:   portsgw.IntentRequiresMethod,
		Created:  time.Now().UTC(),
	}
	if err := g.store.PutIntent(ctx, intent); err != nil {
		return nil, fmt.Errorf("%w: storing intent: %v", apperrors.ErrGatewayUnavailable, err)
	}
	return &intent, nil
}

// Capture validates the payment method and marks the intent succeeded.
func (g *SimulatedGateway) Capture(ctx context.Context, intentID string, method portsgw.PaymentMethod) (*portsgw.Charge, error) {
	if err := g.roundTrip(ctx); err != nil {
		return nil, err
	}
	intent, err := g.store.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if err := validatePaymentMethod(method); err != nil {
		return nil, err
	}
	if err := g.store.SetStatus(ctx, intentID, portsgw.IntentSucceeded); err != nil {
		return nil, fmt.Errorf("%w: updating intent: %v", apperrors.ErrGatewayUnavailable, err)
	}
	return &portsgw.Charge{
		ChargeID: newExternalID("ch"),
		IntentID: intentID,
		Amount:   intent.Amount,
		Status:   "succeeded",
	}, nil
}

// Release transfers captured funds to the payee. The intent must have succeeded.
func (g *SimulatedGateway) Release(ctx context.Context, intentID string) (*portsgw.Transfer, error) {
	if err := g.roundTrip(ctx); err != nil {
		return nil, err
	}
	intent, err := g.store.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != portsgw.IntentSucceeded {
		return nil, fmt.Errorf("%w: intent %s is %s, not succeeded", apperrors.ErrInvalidTransition, intentID, intent.Status)
	}
	return &portsgw.Transfer{
		TransferID: newExternalID("tr"),
		Amount:     intent.Amount,
		Status:     "released",
	}, nil
}

// Refund returns captured funds to the payer, defaulting to the full amount.
// Idempotent per intent: the second refund attempt fails with ErrAlreadyRefunded.
func (g *SimulatedGateway) Refund(ctx context.Context, intentID string, amount *decimal.Decimal) (*portsgw.RefundReceipt, error) {
	if err := g.roundTrip(ctx); err != nil {
		return nil, err
	}
	intent, err := g.store.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	refundAmount := intent.Amount
	if amount != nil {
		if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(intent.Amount) {
			return nil, fmt.Errorf("%w: refund amount out of range", apperrors.ErrValidation)
		}
		refundAmount = *amount
	}
	if err := g.store.MarkRefunded(ctx, intentID); err != nil {
		return nil, err
	}
	return &portsgw.RefundReceipt{
		RefundID: newExternalID("re"),
		Amount:   refundAmount,
		Status:   "succeeded",
	}, nil
}

// validatePaymentMethod applies format checks plus a Luhn checksum for
// card-like identifiers. Wallet methods pass through.
func validatePaymentMethod(method portsgw.PaymentMethod) error {
	if method.Type != "card" {
		return nil
	}
	digits := make([]byte, 0, len(method.CardNumber))
	for i := 0; i < len(method.CardNumber); i++ {
		c := method.CardNumber[i]
		if c == ' ' {
			continue
		}
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: card number contains non-digits", apperrors.ErrPaymentMethodInvalid)
		}
		digits = append(digits, c)
	}
	if len(digits) < 13 || len(digits) > 19 {
		return fmt.Errorf("%w: card number length", apperrors.ErrPaymentMethodInvalid)
	}
	if !luhnCheck(digits) {
		return fmt.Errorf("%w: card number failed checksum", apperrors.ErrPaymentMethodInvalid)
	}
	if method.ExpiryMonth < 1 || method.ExpiryMonth > 12 {
		return fmt.Errorf("%w: expiry month", apperrors.ErrPaymentMethodInvalid)
	}
	if method.ExpiryYear < time.Now().UTC().Year() {
		return fmt.Errorf("%w: card expired", apperrors.ErrPaymentMethodInvalid)
	}
	return nil
}

// luhnCheck validates a digit string with the Luhn algorithm.
func luhnCheck(digits []byte) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
