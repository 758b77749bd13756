package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workhive/workhive_backend/internal/core/domain"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{domain.OrderPending, domain.OrderInProgress, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderDeclined, true},
		{domain.OrderPending, domain.OrderCompleted, false},
		{domain.OrderPending, domain.OrderClosed, false},
		{domain.OrderInProgress, domain.OrderCompleted, true},
		{domain.OrderInProgress, domain.OrderCancelled, true},
		{domain.OrderInProgress, domain.OrderDeclined, true},
		{domain.OrderInProgress, domain.OrderClosed, false},
		{domain.OrderInProgress, domain.OrderPending, false},
		{domain.OrderCompleted, domain.OrderClosed, true},
		{domain.OrderCompleted, domain.OrderCancelled, false},
		{domain.OrderCompleted, domain.OrderInProgress, false},
		{domain.OrderClosed, domain.OrderCancelled, false},
		{domain.OrderCancelled, domain.OrderPending, false},
		{domain.OrderDeclined, domain.OrderPending, false},
	}
	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, domain.OrderClosed.IsTerminal())
	assert.True(t, domain.OrderCancelled.IsTerminal())
	assert.True(t, domain.OrderDeclined.IsTerminal())

	assert.False(t, domain.OrderPending.IsTerminal())
	assert.False(t, domain.OrderInProgress.IsTerminal())
	assert.False(t, domain.OrderCompleted.IsTerminal())
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, domain.ValidOrderStatus(domain.OrderPending))
	assert.True(t, domain.ValidOrderStatus(domain.OrderClosed))
	assert.False(t, domain.ValidOrderStatus("SHIPPED"))
	assert.False(t, domain.ValidOrderStatus(""))
}

func TestOrderIsParticipant(t *testing.T) {
	order := domain.Order{ClientID: "client-1", FreelancerID: "freelancer-1"}

	assert.True(t, order.IsParticipant("client-1"))
	assert.True(t, order.IsParticipant("freelancer-1"))
	assert.False(t, order.IsParticipant("someone-else"))
}

func TestTransactionConsistent(t *testing.T) {
	cases := []struct {
		name       string
		status     domain.TransactionStatus
		escrow     domain.EscrowStatus
		consistent bool
	}{
		{"held escrowed", domain.TransactionEscrowed, domain.EscrowHeld, true},
		{"held but pending", domain.TransactionPending, domain.EscrowHeld, false},
		{"released", domain.TransactionReleased, domain.EscrowReleased, true},
		{"released but escrowed", domain.TransactionEscrowed, domain.EscrowReleased, false},
		{"refunded", domain.TransactionRefunded, domain.EscrowRefunded, true},
		{"placeholder", domain.TransactionPending, domain.EscrowPending, true},
		{"failed placeholder", domain.TransactionFailed, domain.EscrowPending, true},
		{"settled without escrow", domain.TransactionCompleted, domain.EscrowPending, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txn := domain.Transaction{Status: tc.status, EscrowStatus: tc.escrow}
			assert.Equal(t, tc.consistent, txn.Consistent())
		})
	}
}
