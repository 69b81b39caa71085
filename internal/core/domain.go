package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DeletedClientLabel names a collection's client after the client record
// was removed from the registry.
const DeletedClientLabel = "deleted client"

type (
	// Date is an ISO calendar date (YYYY-MM-DD). ISO date strings sort
	// lexicographically in calendar order, so range checks are plain
	// string comparisons.
	Date string

	// Account is a registered login identity. Accounts are append-only:
	// they are never mutated or deleted after registration.
	Account struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"password"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// Session is the currently authenticated identity. It snapshots the
	// account at login time and is never re-validated against the
	// directory afterwards.
	Session struct {
		UserID    string    `json:"userId"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		LoginTime time.Time `json:"loginTime"`
	}

	// Client is a customer record owned by one account.
	Client struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Address   string    `json:"address"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Collection is one recorded payment. ClientID is a weak reference:
	// it may dangle after the client is deleted, and consumers must render
	// a fallback label instead of failing.
	Collection struct {
		ID          string    `json:"id"`
		ClientID    string    `json:"clientId"`
		Amount      Money     `json:"amount"`
		Date        Date      `json:"date"`
		Description string    `json:"description"`
		Time        string    `json:"time"`
		CreatedAt   time.Time `json:"createdAt"`
	}
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidRange       = errors.New("start date must not be after end date")
	ErrNotFound           = errors.New("not found")
)

// emailRe is the local@domain.tld shape: no whitespace or extra @, and at
// least one dot in the domain part.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a plausible email shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// NewDate converts a wall-clock instant to its ISO calendar date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func (d Date) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// InRange reports whether d lies in the inclusive range [from, to].
func (d Date) InRange(from, to Date) bool {
	return d >= from && d <= to
}

// YearMonth returns the YYYY-MM prefix of the date.
func (d Date) YearMonth() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

// ValidateRange checks both endpoints and rejects inverted ranges. The
// report engine has undefined behavior for from > to, so callers must run
// this before filtering.
func ValidateRange(from, to Date) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if from > to {
		return ErrInvalidRange
	}
	return nil
}

func (c Collection) Validate() error {
	if err := c.Amount.Validate(); err != nil {
		return err
	}
	if err := c.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the minimal client invariant. The registry deliberately
// enforces no uniqueness on email or name; only a non-blank name is
// required so list rows stay addressable.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingFields
	}
	return nil
}
