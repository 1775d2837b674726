package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"spendwise/internal/core/events"
	"spendwise/internal/storage"
)

// SettingsSource supplies the current settings to serialize.
type SettingsSource interface {
	Get() Settings
}

// BlobWriter is the slice of the blob store the persister needs.
type BlobWriter interface {
	Put(key string, value []byte) error
}

// Persister mirrors the full settings object to the settings blob on every
// update event.
type Persister struct {
	blobs  BlobWriter
	source SettingsSource
	logger *slog.Logger
}

func NewPersister(blobs BlobWriter, source SettingsSource, logger *slog.Logger) *Persister {
	return &Persister{
		blobs:  blobs,
		source: source,
		logger: logger,
	}
}

// Register subscribes the persister to settings update events.
func (p *Persister) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeSettingsUpdated, p.HandleUpdate)
}

// HandleUpdate serializes the current settings and writes them through.
func (p *Persister) HandleUpdate(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(p.source.Get())
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	if err := p.blobs.Put(storage.BlobKeySettings, raw); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}

	p.logger.Debug("settings persisted", "event_id", event.EventID())
	return nil
}
