// Package kv defines the flat key-value namespace the application persists
// into. Every key holds one JSON-encoded document; a read or write of a
// single key is atomic from the caller's perspective and there are no
// cross-key transactions.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the port implemented by the memory, bolt and sqlite backends.
type Store interface {
	// Get returns the raw value for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put writes the full value for key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Well-known keys of the namespace. Client and collection keys are
// partitioned per account so users never see each other's data.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

func ClientsKey(userID string) string {
	return "clients_" + userID
}

func CollectionsKey(userID string) string {
	return "collections_" + userID
}

// GetJSON decodes the value at key into v. Returns false with v untouched
// when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and writes it at key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
