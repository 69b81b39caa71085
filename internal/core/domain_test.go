package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"user@example", false}, // no dot in domain
		{"user example@x.com", false},
		{"user@@example.com", false},
		{"@example.com", false},
		{"user@.", false},
		{"", false},
	}
	for i, tc := range cases {
		if got := ValidEmail(tc.in); got != tc.ok {
			t.Fatalf("case %d (%q): expected %v, got %v", i, tc.in, tc.ok, got)
		}
	}
}

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{"2024-01-05", true},
		{"2024-12-31", true},
		{"2024-02-30", false},
		{"2024-1-5", false},
		{"not-a-date", false},
		{"", false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateInRange(t *testing.T) {
	cases := []struct {
		d, from, to Date
		want        bool
	}{
		{"2024-01-05", "2024-01-01", "2024-01-31", true},
		{"2024-01-01", "2024-01-01", "2024-01-31", true}, // inclusive lower
		{"2024-01-31", "2024-01-01", "2024-01-31", true}, // inclusive upper
		{"2024-01-05", "2024-01-05", "2024-01-05", true}, // single-day range
		{"2023-12-31", "2024-01-01", "2024-01-31", false},
		{"2024-02-01", "2024-01-01", "2024-01-31", false},
	}
	for i, tc := range cases {
		if got := tc.d.InRange(tc.from, tc.to); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange("2024-01-01", "2024-01-31"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateRange("2024-01-05", "2024-01-05"); err != nil {
		t.Fatalf("expected ok for from == to, got %v", err)
	}
	if err := ValidateRange("2024-02-01", "2024-01-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := ValidateRange("bad", "2024-01-01"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := ValidateRange("2024-01-01", "bad"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateYearMonth(t *testing.T) {
	if got := Date("2024-03-15").YearMonth(); got != "2024-03" {
		t.Fatalf("expected 2024-03, got %q", got)
	}
}

func TestNewDate(t *testing.T) {
	at := time.Date(2024, 7, 9, 23, 59, 0, 0, time.UTC)
	if got := NewDate(at); got != "2024-07-09" {
		t.Fatalf("expected 2024-07-09, got %q", got)
	}
}

func TestCollectionValidate(t *testing.T) {
	good := Collection{Amount: Money{Cents: 100}, Date: "2024-01-05"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Collection{Amount: Money{Cents: -1}, Date: "2024-01-05"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (Collection{Amount: Money{Cents: 100}, Date: "garbage"}).Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestClientValidate(t *testing.T) {
	if err := (Client{Name: "Maria"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Client{Name: "   "}).Validate(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
