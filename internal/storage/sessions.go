package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cobro/internal/auth"
	"cobro/internal/core"
	"cobro/internal/kv"
)

// Sessions gates access to the rest of the application. A single session is
// persisted under the currentUser key; presence of that key is the whole
// authentication state. There is no expiry and no re-validation against the
// directory after login.
type Sessions struct {
	store     kv.Store
	directory *Directory
	hasher    *auth.Hasher
}

func NewSessions(store kv.Store, directory *Directory, hasher *auth.Hasher) *Sessions {
	return &Sessions{store: store, directory: directory, hasher: hasher}
}

// Login checks the credentials against the directory and persists a fresh
// session stamped with the current time. Lookup misses and password
// mismatches both surface as ErrInvalidCredentials.
func (s *Sessions) Login(ctx context.Context, email, password string) (core.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return core.Session{}, core.ErrMissingFields
	}
	if !core.ValidEmail(email) {
		return core.Session{}, core.ErrInvalidEmail
	}

	account, ok, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return core.Session{}, err
	}
	if !ok {
		return core.Session{}, core.ErrInvalidCredentials
	}
	if err := s.hasher.Verify(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return core.Session{}, core.ErrInvalidCredentials
		}
		return core.Session{}, fmt.Errorf("verify password: %w", err)
	}

	session := core.Session{
		UserID:    account.ID,
		Name:      account.Name,
		Email:     account.Email,
		LoginTime: time.Now().UTC(),
	}
	if err := kv.PutJSON(ctx, s.store, kv.KeyCurrentUser, session); err != nil {
		return core.Session{}, err
	}

	slog.InfoContext(ctx, "Session opened", "user_id", session.UserID)
	return session, nil
}

// Logout removes the persisted session. Logging out with no session is a
// no-op, so the operation is idempotent.
func (s *Sessions) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, kv.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current reads the persisted session without any staleness check.
func (s *Sessions) Current(ctx context.Context) (core.Session, bool, error) {
	var session core.Session
	ok, err := kv.GetJSON(ctx, s.store, kv.KeyCurrentUser, &session)
	if err != nil {
		return core.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	return session, ok, nil
}

// IsAuthenticated reports whether a session is persisted. Existence is the
// only criterion; there is no expiry.
func (s *Sessions) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.Current(ctx)
	return ok, err
}
