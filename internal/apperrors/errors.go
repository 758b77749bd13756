package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated indicates that no verified actor identity was supplied.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrUnauthorized indicates that the actor lacks rights over the entity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates an order status change that violates the transition table.
var ErrInvalidTransition = errors.New("invalid order status transition")

// ErrPaymentMethodInvalid indicates the gateway rejected the supplied payment method.
var ErrPaymentMethodInvalid = errors.New("payment method invalid")

// ErrGatewayUnavailable indicates the payment provider could not be reached.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ErrNotInEscrow indicates a release or refund was attempted while funds are not held.
var ErrNotInEscrow = errors.New("funds are not in escrow")

// ErrAlreadyRefunded indicates a repeated refund attempt on an already-refunded intent.
var ErrAlreadyRefunded = errors.New("payment already refunded")

// ErrInconsistentState indicates detected divergence between order and ledger state.
var ErrInconsistentState = errors.New("inconsistent ledger state")

// AppError carries a status code alongside a message and a wrapped cause.
// Repositories use it to surface infrastructure failures without leaking driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
