package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"cobro/internal/core"
	"cobro/internal/kv"
)

// Ledger is the per-user list of collection records. Entries are append-only
// and individually deletable; there is no update path.
type Ledger struct {
	store kv.Store
}

func NewLedger(store kv.Store) *Ledger {
	return &Ledger{store: store}
}

// Append validates the entry, stamps it and persists. The clientId is
// accepted as-is: referential integrity against the client registry is a
// presentation concern, not enforced here.
func (l *Ledger) Append(ctx context.Context, userID string, c core.Collection) (core.Collection, error) {
	if err := c.Validate(); err != nil {
		return core.Collection{}, err
	}

	entries, err := l.List(ctx, userID)
	if err != nil {
		return core.Collection{}, err
	}

	now := time.Now().UTC()
	c.ID = xid.New().String()
	c.Time = now.Format("15:04:05")
	c.CreatedAt = now

	entries = append(entries, c)
	if err := l.save(ctx, userID, entries); err != nil {
		return core.Collection{}, err
	}

	slog.InfoContext(ctx, "Collection recorded",
		"user_id", userID,
		"collection_id", c.ID,
		"client_id", c.ClientID,
		"amount_cents", c.Amount.Cents,
		"date", c.Date)
	return c, nil
}

// Delete removes the matching record; absent ids are a silent no-op.
func (l *Ledger) Delete(ctx context.Context, userID, id string) error {
	entries, err := l.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, c := range entries {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	if err := l.save(ctx, userID, kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Collection deleted", "user_id", userID, "collection_id", id)
	return nil
}

// Get returns the entry with the given id, if present.
func (l *Ledger) Get(ctx context.Context, userID, id string) (core.Collection, bool, error) {
	entries, err := l.List(ctx, userID)
	if err != nil {
		return core.Collection{}, false, err
	}
	for _, c := range entries {
		if c.ID == id {
			return c, true, nil
		}
	}
	return core.Collection{}, false, nil
}

// List returns the user's entries with no order guarantee; consuming views
// sort explicitly.
func (l *Ledger) List(ctx context.Context, userID string) ([]core.Collection, error) {
	var entries []core.Collection
	if _, err := kv.GetJSON(ctx, l.store, kv.CollectionsKey(userID), &entries); err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	return entries, nil
}

// CountByClient returns how many entries reference the given client.
// Callers use it to warn before a client deletion leaves dangling ids.
func (l *Ledger) CountByClient(ctx context.Context, userID, clientID string) (int, error) {
	entries, err := l.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range entries {
		if c.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (l *Ledger) save(ctx context.Context, userID string, entries []core.Collection) error {
	return kv.PutJSON(ctx, l.store, kv.CollectionsKey(userID), entries)
}
