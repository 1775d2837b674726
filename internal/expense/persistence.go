package expense

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"spendwise/internal/core/events"
	"spendwise/internal/storage"
)

// Snapshotter supplies the full collection to serialize on every mutation.
type Snapshotter interface {
	List() []*Expense
}

// BlobWriter is the slice of the blob store the persister needs.
type BlobWriter interface {
	Put(key string, value []byte) error
}

// Persister mirrors the expense collection to the expenses blob whenever a
// mutation event fires. The whole array is rewritten each time; there is no
// batching and no transaction semantics.
type Persister struct {
	blobs  BlobWriter
	source Snapshotter
	logger *slog.Logger
}

func NewPersister(blobs BlobWriter, source Snapshotter, logger *slog.Logger) *Persister {
	return &Persister{
		blobs:  blobs,
		source: source,
		logger: logger,
	}
}

// Register subscribes the persister to every expense mutation event.
func (p *Persister) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeExpenseAdded, p.HandleMutation)
	bus.Subscribe(events.EventTypeExpenseDeleted, p.HandleMutation)
}

// HandleMutation serializes the current collection and writes it through.
func (p *Persister) HandleMutation(ctx context.Context, event events.Event) error {
	snapshot := p.source.List()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("serialize expense collection: %w", err)
	}

	if err := p.blobs.Put(storage.BlobKeyExpenses, raw); err != nil {
		return fmt.Errorf("persist expense collection: %w", err)
	}

	p.logger.Debug("expense collection persisted",
		"event_type", event.EventType(),
		"count", len(snapshot))
	return nil
}
