package identity

import (
	"context"
	"testing"
)

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Ada Pipes",
		Email:    "ada@example.com",
		Password: "hunter2",
		Role:     RoleProvider,
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected a generated user id")
	}
	if user.PasswordHash == "" || user.Salt == "" {
		t.Fatalf("expected stored hash and salt, got %+v", user)
	}
	if user.PasswordHash == "hunter2" {
		t.Fatalf("password stored in the clear")
	}

	authed, err := svc.Authenticate(ctx, "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("authenticated a different user: %s vs %s", authed.ID, user.ID)
	}
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	input := validInput()
	input.Email = "  Ada@Example.COM "
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("authenticate with normalized email: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, validInput()); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := map[string]func(*RegisterInput){
		"missing name":     func(in *RegisterInput) { in.Name = " " },
		"missing email":    func(in *RegisterInput) { in.Email = "" },
		"bad email":        func(in *RegisterInput) { in.Email = "not-an-email" },
		"missing password": func(in *RegisterInput) { in.Password = "" },
		"unknown role":     func(in *RegisterInput) { in.Role = "admin" },
		"empty role":       func(in *RegisterInput) { in.Role = "" },
	}
	for name, mutate := range cases {
		input := validInput()
		mutate(&input)
		if _, err := svc.Register(ctx, input); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "hunter2"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
