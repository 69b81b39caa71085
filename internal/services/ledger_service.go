// Package services orchestrates storage writes with event publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"cobro/internal/amqp"
	"cobro/internal/core"
	"cobro/internal/storage"
)

// LedgerService records and removes collections, publishing an export event
// for each mutation. The broker is optional: when no client is configured
// the service degrades to plain storage, and publish failures never fail
// the request since the entry is already persisted locally.
type LedgerService struct {
	ledger     *storage.Ledger
	amqpClient *amqp.Client
}

func NewLedgerService(ledger *storage.Ledger, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{ledger: ledger, amqpClient: amqpClient}
}

// Record appends the entry and publishes a recorded event.
func (s *LedgerService) Record(ctx context.Context, userID string, c core.Collection) (core.Collection, error) {
	saved, err := s.ledger.Append(ctx, userID, c)
	if err != nil {
		return core.Collection{}, err
	}

	if err := s.publish(ctx, amqp.NewRecordedEvent(userID, saved.ID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recorded event",
			"collection_id", saved.ID, "error", err)
	}

	return saved, nil
}

// Remove deletes the entry and publishes a deleted event. Deleting an
// absent id stays a silent no-op and publishes nothing.
func (s *LedgerService) Remove(ctx context.Context, userID, id string) error {
	existing, ok, err := s.ledger.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.ledger.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if !ok {
		return nil
	}

	if err := s.publish(ctx, amqp.NewDeletedEvent(userID, existing.ID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			"collection_id", existing.ID, "error", err)
	}

	return nil
}

func (s *LedgerService) publish(ctx context.Context, ev *amqp.CollectionEvent) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not configured, skipping event", "type", ev.Type)
		return nil
	}
	return s.amqpClient.Publish(ctx, ev)
}

// Close releases the broker connection when one is configured.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
