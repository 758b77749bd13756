package gateway_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/workhive_backend/internal/apperrors"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
	"github.com/workhive/workhive_backend/internal/gateway"
)

func newTestGateway() (*gateway.SimulatedGateway, *gateway.MemoryIntentStore) {
	store := gateway.NewMemoryIntentStore()
	return gateway.NewSimulatedGateway(store, 0), store
}

func validCard() portsgw.PaymentMethod {
	return portsgw.PaymentMethod{
		Type:        "card",
		CardNumber:  "4242 4242 4242 4242",
		ExpiryMonth: 6,
		ExpiryYear:  time.Now().UTC().Year() + 1,
		CVC:         "123",
	}
}

func TestAuthorizeCreatesIntent(t *testing.T) {
	gw, store := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(100), "USD", portsgw.Metadata{"order_id": "o1"})
	require.NoError(t, err)
	assert.NotEmpty(t, intent.IntentID)
	assert.Equal(t, portsgw.IntentRequiresMethod, intent.Status)

	stored, err := store.GetIntent(ctx, intent.IntentID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(100)))
}

func TestAuthorizeRejectsNonPositiveAmount(t *testing.T) {
	gw, _ := newTestGateway()

	_, err := gw.Authorize(context.Background(), decimal.Zero, "USD", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCaptureMarksIntentSucceeded(t *testing.T) {
	gw, store := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	charge, err := gw.Capture(ctx, intent.IntentID, validCard())
	require.NoError(t, err)
	assert.NotEmpty(t, charge.ChargeID)
	assert.Equal(t, intent.IntentID, charge.IntentID)
	assert.Equal(t, "succeeded", charge.Status)

	stored, err := store.GetIntent(ctx, intent.IntentID)
	require.NoError(t, err)
	assert.Equal(t, portsgw.IntentSucceeded, stored.Status)
}

func TestCaptureRejectsFailedChecksum(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	method := validCard()
	method.CardNumber = "4242424242424241"
	_, err = gw.Capture(ctx, intent.IntentID, method)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentMethodInvalid)
}

func TestCaptureRejectsExpiredCard(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	method := validCard()
	method.ExpiryYear = time.Now().UTC().Year() - 1
	_, err = gw.Capture(ctx, intent.IntentID, method)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentMethodInvalid)
}

func TestCaptureWalletSkipsCardChecks(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	_, err = gw.Capture(ctx, intent.IntentID, portsgw.PaymentMethod{Type: "wallet"})
	assert.NoError(t, err)
}

func TestCaptureUnknownIntent(t *testing.T) {
	gw, _ := newTestGateway()

	_, err := gw.Capture(context.Background(), "pi_missing", validCard())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReleaseRequiresCapturedIntent(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	_, err = gw.Release(ctx, intent.IntentID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = gw.Capture(ctx, intent.IntentID, validCard())
	require.NoError(t, err)

	transfer, err := gw.Release(ctx, intent.IntentID)
	require.NoError(t, err)
	assert.Equal(t, "released", transfer.Status)
	assert.True(t, transfer.Amount.Equal(decimal.NewFromInt(75)))
}

func TestRefundIsIdempotentPerIntent(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)
	_, err = gw.Capture(ctx, intent.IntentID, validCard())
	require.NoError(t, err)

	receipt, err := gw.Refund(ctx, intent.IntentID, nil)
	require.NoError(t, err)
	assert.True(t, receipt.Amount.Equal(decimal.NewFromInt(75)))

	_, err = gw.Refund(ctx, intent.IntentID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRefunded)
}

func TestRefundAmountBounds(t *testing.T) {
	gw, _ := newTestGateway()
	ctx := context.Background()

	intent, err := gw.Authorize(ctx, decimal.NewFromInt(75), "USD", nil)
	require.NoError(t, err)

	tooMuch := decimal.NewFromInt(100)
	_, err = gw.Refund(ctx, intent.IntentID, &tooMuch)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	partial := decimal.NewFromInt(50)
	receipt, err := gw.Refund(ctx, intent.IntentID, &partial)
	require.NoError(t, err)
	assert.True(t, receipt.Amount.Equal(partial))
}

func TestExpiredContextSurfacesAsUnavailable(t *testing.T) {
	store := gateway.NewMemoryIntentStore()
	gw := gateway.NewSimulatedGateway(store, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := gw.Authorize(ctx, decimal.NewFromInt(10), "USD", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}
