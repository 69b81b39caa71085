// Package storage implements the four application stores over the flat kv
// namespace: the user directory, the session store, the per-user client
// registry and the per-user collection ledger. Every mutation rewrites the
// full document for its key; there is no partial write.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"cobro/internal/auth"
	"cobro/internal/core"
	"cobro/internal/kv"
)

// Directory is the registry of accounts. Accounts are append-only; there is
// no update or delete path.
type Directory struct {
	store  kv.Store
	hasher *auth.Hasher
}

func NewDirectory(store kv.Store, hasher *auth.Hasher) *Directory {
	return &Directory{store: store, hasher: hasher}
}

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the input, appends a new account and persists the
// directory. Each validation failure maps to exactly one sentinel error so
// callers can surface a matching message. On failure nothing is written.
func (d *Directory) Register(ctx context.Context, in RegisterInput) (core.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return core.Account{}, core.ErrMissingFields
	}
	if !core.ValidEmail(email) {
		return core.Account{}, core.ErrInvalidEmail
	}
	if len(in.Password) < 6 {
		return core.Account{}, core.ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return core.Account{}, core.ErrPasswordMismatch
	}

	accounts, err := d.load(ctx)
	if err != nil {
		return core.Account{}, err
	}
	// Case-sensitive exact match, same as the stored form.
	for _, a := range accounts {
		if a.Email == email {
			return core.Account{}, core.ErrEmailTaken
		}
	}

	hash, err := d.hasher.Hash(in.Password)
	if err != nil {
		return core.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := core.Account{
		ID:           xid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	accounts = append(accounts, account)

	if err := kv.PutJSON(ctx, d.store, kv.KeyUsers, accounts); err != nil {
		return core.Account{}, err
	}

	slog.InfoContext(ctx, "Account registered", "user_id", account.ID, "email", account.Email)
	return account, nil
}

// FindByEmail looks an account up by case-sensitive exact email match.
func (d *Directory) FindByEmail(ctx context.Context, email string) (core.Account, bool, error) {
	accounts, err := d.load(ctx)
	if err != nil {
		return core.Account{}, false, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return a, true, nil
		}
	}
	return core.Account{}, false, nil
}

// List returns all registered accounts in registration order.
func (d *Directory) List(ctx context.Context) ([]core.Account, error) {
	return d.load(ctx)
}

func (d *Directory) load(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	if _, err := kv.GetJSON(ctx, d.store, kv.KeyUsers, &accounts); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return accounts, nil
}
