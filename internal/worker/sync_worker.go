// Package worker exports recorded collections to an external journal.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"cobro/internal/amqp"
	"cobro/internal/core"
	"cobro/internal/export/sheets"
	"cobro/internal/storage"
)

// RowAppender writes one journal line to the export target.
type RowAppender interface {
	AppendRow(ctx context.Context, row sheets.Row) error
}

// SyncWorker handles collection events by appending rows to the export
// journal. Deleted events are logged only; the journal is append-only.
type SyncWorker struct {
	ledger   *storage.Ledger
	clients  *storage.ClientRegistry
	exporter RowAppender
	logger   *slog.Logger
}

func NewSyncWorker(ledger *storage.Ledger, clients *storage.ClientRegistry, exporter RowAppender, logger *slog.Logger) *SyncWorker {
	return &SyncWorker{
		ledger:   ledger,
		clients:  clients,
		exporter: exporter,
		logger:   logger,
	}
}

// HandleEvent dispatches a collection event to the matching handler. Its
// signature matches the AMQP consumer callback.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.CollectionEvent) error {
	switch event.Type {
	case amqp.EventRecorded:
		return w.handleRecorded(ctx, event)
	case amqp.EventDeleted:
		w.logger.InfoContext(ctx, "collection deleted, journal unchanged",
			"user_id", event.UserID,
			"collection_id", event.CollectionID)
		return nil
	default:
		w.logger.WarnContext(ctx, "unknown event type, skipping",
			"event_type", event.Type)
		return nil
	}
}

func (w *SyncWorker) handleRecorded(ctx context.Context, event *amqp.CollectionEvent) error {
	collection, ok, err := w.ledger.Get(ctx, event.UserID, event.CollectionID)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", event.CollectionID, err)
	}
	if !ok {
		// Deleted between recording and export; nothing to journal.
		w.logger.InfoContext(ctx, "collection no longer exists, skipping export",
			"user_id", event.UserID,
			"collection_id", event.CollectionID)
		return nil
	}

	clientName := core.DeletedClientLabel
	client, ok, err := w.clients.Get(ctx, event.UserID, collection.ClientID)
	if err != nil {
		return fmt.Errorf("load client %s: %w", collection.ClientID, err)
	}
	if ok {
		clientName = client.Name
	}

	row := sheets.Row{
		Date:        string(collection.Date),
		ClientName:  clientName,
		Amount:      collection.Amount.String(),
		Description: collection.Description,
		Time:        collection.Time,
	}
	if err := w.exporter.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("export collection %s: %w", event.CollectionID, err)
	}

	w.logger.InfoContext(ctx, "collection exported",
		"user_id", event.UserID,
		"collection_id", event.CollectionID,
		"client_name", clientName)
	return nil
}
