package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/workhive/workhive_backend/internal/apperrors"
	portsgw "github.com/workhive/workhive_backend/internal/core/ports/gateway"
)

// MemoryIntentStore keeps payment intents in process memory. Suitable for
// tests and single-node development; production wiring uses the Postgres
// store so restarts do not lose in-flight intents.
type MemoryIntentStore struct {
	mu       sync.RWMutex
	intents  map[string]portsgw.PaymentIntent
	refunded map[string]bool
}

var _ portsgw.IntentStore = (*MemoryIntentStore)(nil)

// NewMemoryIntentStore creates an empty in-memory intent store.
func NewMemoryIntentStore() *MemoryIntentStore {
	return &MemoryIntentStore{
		intents:  make(map[string]portsgw.PaymentIntent),
		refunded: make(map[string]bool),
	}
}

// PutIntent creates or replaces an intent record.
func (s *MemoryIntentStore) PutIntent(_ context.Context, intent portsgw.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[intent.IntentID] = intent
	return nil
}

// GetIntent retrieves an intent, or ErrNotFound.
func (s *MemoryIntentStore) GetIntent(_ context.Context, intentID string) (*portsgw.PaymentIntent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	intent, ok := s.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("%w: payment intent %s", apperrors.ErrNotFound, intentID)
	}
	return &intent, nil
}

// SetStatus updates the intent status.
func (s *MemoryIntentStore) SetStatus(_ context.Context, intentID string, status portsgw.IntentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[intentID]
	if !ok {
		return fmt.Errorf("%w: payment intent %s", apperrors.ErrNotFound, intentID)
	}
	intent.Status = status
	s.intents[intentID] = intent
	return nil
}

// MarkRefunded flips the refunded flag exactly once per intent.
func (s *MemoryIntentStore) MarkRefunded(_ context.Context, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.intents[intentID]; !ok {
		return fmt.Errorf("%w: payment intent %s", apperrors.ErrNotFound, intentID)
	}
	if s.refunded[intentID] {
		return fmt.Errorf("%w: intent %s", apperrors.ErrAlreadyRefunded, intentID)
	}
	s.refunded[intentID] = true
	return nil
}
