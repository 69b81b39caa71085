package storage

import (
	"context"
	"errors"
	"testing"

	"cobro/internal/core"
	"cobro/internal/kv/memory"
)

func TestLedgerAppend(t *testing.T) {
	l := NewLedger(memory.New())
	ctx := context.Background()

	saved, err := l.Append(ctx, "u1", core.Collection{
		ClientID:    "c1",
		Amount:      core.Money{Cents: 7550},
		Date:        "2024-01-05",
		Description: "weekly payment",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated id")
	}
	if saved.Time == "" {
		t.Fatal("expected time-of-day stamp")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	got, ok, err := l.Get(ctx, "u1", saved.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Amount.Cents != 7550 || got.Date != "2024-01-05" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLedgerAppendValidation(t *testing.T) {
	l := NewLedger(memory.New())
	ctx := context.Background()

	if _, err := l.Append(ctx, "u1", core.Collection{Amount: core.Money{Cents: -5}, Date: "2024-01-05"}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.Append(ctx, "u1", core.Collection{Amount: core.Money{Cents: 100}, Date: "05/01/2024"}); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	entries, err := l.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected entries must not be stored, got %d", len(entries))
	}
}

func TestLedgerAppendZeroAmount(t *testing.T) {
	l := NewLedger(memory.New())
	if _, err := l.Append(context.Background(), "u1", core.Collection{Amount: core.Money{}, Date: "2024-01-05"}); err != nil {
		t.Fatalf("zero amount should be legal, got %v", err)
	}
}

func TestLedgerDelete(t *testing.T) {
	l := NewLedger(memory.New())
	ctx := context.Background()

	a, _ := l.Append(ctx, "u1", core.Collection{Amount: core.Money{Cents: 100}, Date: "2024-01-01"})
	b, _ := l.Append(ctx, "u1", core.Collection{Amount: core.Money{Cents: 200}, Date: "2024-01-02"})

	if err := l.Delete(ctx, "u1", a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entries, _ := l.List(ctx, "u1")
	if len(entries) != 1 || entries[0].ID != b.ID {
		t.Fatalf("unexpected survivors: %+v", entries)
	}

	// Absent ids delete silently.
	if err := l.Delete(ctx, "u1", "missing"); err != nil {
		t.Fatalf("no-op delete: %v", err)
	}
}

func TestLedgerCountByClient(t *testing.T) {
	l := NewLedger(memory.New())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := l.Append(ctx, "u1", core.Collection{ClientID: "c1", Amount: core.Money{Cents: 100}, Date: "2024-01-01"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := l.Append(ctx, "u1", core.Collection{ClientID: "c2", Amount: core.Money{Cents: 100}, Date: "2024-01-01"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	n, err := l.CountByClient(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestLedgerIsolatedPerUser(t *testing.T) {
	l := NewLedger(memory.New())
	ctx := context.Background()

	if _, err := l.Append(ctx, "u1", core.Collection{Amount: core.Money{Cents: 100}, Date: "2024-01-01"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	other, err := l.List(ctx, "u2")
	if err != nil {
		t.Fatalf("list other user: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty ledger for other user, got %+v", other)
	}
}
