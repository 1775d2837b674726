package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"spendwise/internal/core/events"
)

// EventPublisher is the slice of the event bus the store needs.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Service is the in-memory authoritative expense collection for the session,
// ordered most-recent-first by insertion. Mutations publish domain events;
// the persistence subscriber mirrors the full collection to storage
// best-effort, so callers never see a persistence failure.
type Service struct {
	mu       sync.RWMutex
	expenses []*Expense
	bus      EventPublisher
	logger   *slog.Logger
}

// NewService creates an empty expense store.
func NewService(bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		expenses: make([]*Expense, 0),
		bus:      bus,
		logger:   logger,
	}
}

// Add validates the DTO, assigns a fresh id and prepends the record.
func (s *Service) Add(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err)
		return nil, err
	}

	exp := NewExpense(dto)

	s.mu.Lock()
	s.expenses = append([]*Expense{exp}, s.expenses...)
	s.mu.Unlock()

	s.logger.Info("expense added",
		"expense_id", exp.ID,
		"amount", exp.Amount,
		"category", exp.Category)

	// Write-through persistence rides on the event bus. Failures are logged
	// by the bus and never surfaced to the caller.
	if err := s.bus.PublishSync(ctx, events.NewExpenseAddedEvent(exp.ID, exp.Amount, exp.Category)); err != nil {
		s.logger.Warn("expense persisted with errors", "expense_id", exp.ID, "error", err)
	}

	return exp, nil
}

// Delete removes the expense with the given id. A missing id is a no-op,
// not an error.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	removed := false
	for i, exp := range s.expenses {
		if exp.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		s.logger.Debug("delete of unknown expense ignored", "expense_id", id)
		return
	}

	s.logger.Info("expense deleted", "expense_id", id)

	if err := s.bus.PublishSync(ctx, events.NewExpenseDeletedEvent(id)); err != nil {
		s.logger.Warn("expense collection persisted with errors", "expense_id", id, "error", err)
	}
}

// List returns a snapshot of the collection preserving insertion order.
func (s *Service) List() []*Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*Expense, len(s.expenses))
	copy(snapshot, s.expenses)
	return snapshot
}

// Count returns the number of records in the collection.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.expenses)
}

// Restore replaces the collection from a serialized blob. A malformed blob
// is discarded with a diagnostic and the existing collection is kept; the
// replacement is never partially applied.
func (s *Service) Restore(raw []byte) {
	if len(raw) == 0 {
		return
	}

	var loaded []*Expense
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Error("discarding malformed expense blob", "error", err)
		return
	}

	s.mu.Lock()
	s.expenses = loaded
	s.mu.Unlock()

	s.logger.Info("expense collection restored", "count", len(loaded))
}
