package storage

import (
	"context"
	"errors"
	"testing"

	"cobro/internal/auth"
	"cobro/internal/core"
	"cobro/internal/kv/memory"
)

// low cost keeps bcrypt fast in tests
func testHasher() *auth.Hasher {
	return auth.NewHasherWithCost(4)
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:            "Maria Lopez",
		Email:           "maria@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister(t *testing.T) {
	d := NewDirectory(memory.New(), testHasher())
	ctx := context.Background()

	account, err := d.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.ID == "" {
		t.Fatal("expected generated id")
	}
	if account.PasswordHash == "secret1" {
		t.Fatal("password stored in clear")
	}
	if account.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	found, ok, err := d.FindByEmail(ctx, "maria@example.com")
	if err != nil || !ok {
		t.Fatalf("find after register: ok=%v err=%v", ok, err)
	}
	if found.ID != account.ID {
		t.Fatalf("expected id %s, got %s", account.ID, found.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, core.ErrMissingFields},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, core.ErrMissingFields},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, core.ErrMissingFields},
		{"missing confirm", func(in *RegisterInput) { in.ConfirmPassword = "" }, core.ErrMissingFields},
		{"bad email", func(in *RegisterInput) { in.Email = "maria@nodot" }, core.ErrInvalidEmail},
		{"short password", func(in *RegisterInput) { in.Password = "12345"; in.ConfirmPassword = "12345" }, core.ErrPasswordTooShort},
		{"mismatch", func(in *RegisterInput) { in.ConfirmPassword = "secret2" }, core.ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDirectory(memory.New(), testHasher())
			in := validInput()
			tc.mutate(&in)
			if _, err := d.Register(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}

			// Failed registrations must leave the directory empty.
			accounts, err := d.List(context.Background())
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(accounts) != 0 {
				t.Fatalf("expected empty directory, got %d accounts", len(accounts))
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	d := NewDirectory(memory.New(), testHasher())
	ctx := context.Background()

	if _, err := d.Register(ctx, validInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	in := validInput()
	in.Name = "Other Person"
	if _, err := d.Register(ctx, in); !errors.Is(err, core.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Uniqueness is case-sensitive: a different casing registers fine.
	in.Email = "MARIA@example.com"
	if _, err := d.Register(ctx, in); err != nil {
		t.Fatalf("case-variant register: %v", err)
	}
}

func TestFindByEmailCaseSensitive(t *testing.T) {
	d := NewDirectory(memory.New(), testHasher())
	ctx := context.Background()

	if _, err := d.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, ok, _ := d.FindByEmail(ctx, "MARIA@example.com"); ok {
		t.Fatal("lookup should be case-sensitive")
	}
	if _, ok, _ := d.FindByEmail(ctx, "maria@example.com"); !ok {
		t.Fatal("exact lookup should succeed")
	}
}
