package settings

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

// Service holds the singleton settings object for the session, mirrored to
// storage on every update through the event bus.
type Service struct {
	mu      sync.RWMutex
	current Settings
	bus     EventPublisher
	logger  *slog.Logger
}

func NewService(bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		current: Defaults(),
		bus:     bus,
		logger:  logger,
	}
}

// Get returns the current settings.
func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and applies a partial update, then persists the full
// settings object best-effort.
func (s *Service) Update(ctx context.Context, dto UpdateSettingsDTO) (Settings, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("settings validation failed", "error", err)
		return s.Get(), err
	}

	s.mu.Lock()
	fields := dto.apply(&s.current)
	updated := s.current
	s.mu.Unlock()

	if len(fields) == 0 {
		return updated, nil
	}

	s.logger.Info("settings updated", "fields", fields)

	if err := s.bus.PublishSync(ctx, events.NewSettingsUpdatedEvent(fields)); err != nil {
		s.logger.Warn("settings persisted with errors", "error", err)
	}

	return updated, nil
}

// Restore loads settings from a serialized blob. A malformed blob is
// discarded in favor of defaults; fields missing from legacy shapes are
// backfilled per field.
func (s *Service) Restore(raw []byte) {
	if len(raw) == 0 {
		return
	}

	var loaded struct {
		CurrencySymbol *string `json:"currencySymbol"`
		CurrencyFormat *string `json:"currencyFormat"`
		Theme          *string `json:"theme"`
		EnableAI       *bool   `json:"enableAI"`
	}
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Error("discarding malformed settings blob", "error", err)
		return
	}

	restored := Defaults()
	if loaded.CurrencySymbol != nil {
		restored.CurrencySymbol = *loaded.CurrencySymbol
	}
	if loaded.CurrencyFormat != nil {
		restored.CurrencyFormat = *loaded.CurrencyFormat
	}
	if loaded.Theme != nil {
		restored.Theme = *loaded.Theme
	}
	if loaded.EnableAI != nil {
		restored.EnableAI = *loaded.EnableAI
	}

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()

	s.logger.Info("settings restored")
}
