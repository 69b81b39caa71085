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

// ClientRegistry holds the per-user customer records. Every mutation
// rewrites the user's full client array immediately.
type ClientRegistry struct {
	store kv.Store
}

func NewClientRegistry(store kv.Store) *ClientRegistry {
	return &ClientRegistry{store: store}
}

// Upsert replaces the record in place when the id matches an existing one,
// preserving both its list position and its original createdAt; otherwise
// it generates an id and appends.
func (r *ClientRegistry) Upsert(ctx context.Context, userID string, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}

	clients, err := r.List(ctx, userID)
	if err != nil {
		return core.Client{}, err
	}

	if c.ID != "" {
		for i, existing := range clients {
			if existing.ID == c.ID {
				c.CreatedAt = existing.CreatedAt
				clients[i] = c
				if err := r.save(ctx, userID, clients); err != nil {
					return core.Client{}, err
				}
				slog.InfoContext(ctx, "Client updated", "user_id", userID, "client_id", c.ID)
				return c, nil
			}
		}
	}

	if c.ID == "" {
		c.ID = xid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	clients = append(clients, c)
	if err := r.save(ctx, userID, clients); err != nil {
		return core.Client{}, err
	}

	slog.InfoContext(ctx, "Client registered", "user_id", userID, "client_id", c.ID)
	return c, nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// silent no-op. Collections referencing the client are never touched; their
// clientId is left dangling on purpose.
func (r *ClientRegistry) Delete(ctx context.Context, userID, id string) error {
	clients, err := r.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := clients[:0]
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(clients) {
		return nil
	}

	if err := r.save(ctx, userID, kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Client deleted", "user_id", userID, "client_id", id)
	return nil
}

// Get returns the client with the given id, if present.
func (r *ClientRegistry) Get(ctx context.Context, userID, id string) (core.Client, bool, error) {
	clients, err := r.List(ctx, userID)
	if err != nil {
		return core.Client{}, false, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, true, nil
		}
	}
	return core.Client{}, false, nil
}

// List returns the user's clients in insertion order (except where an
// upsert replaced a record in place).
func (r *ClientRegistry) List(ctx context.Context, userID string) ([]core.Client, error) {
	var clients []core.Client
	if _, err := kv.GetJSON(ctx, r.store, kv.ClientsKey(userID), &clients); err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRegistry) save(ctx context.Context, userID string, clients []core.Client) error {
	return kv.PutJSON(ctx, r.store, kv.ClientsKey(userID), clients)
}
