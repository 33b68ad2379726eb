package service_test

import (
	"context"
	"errors"
	"testing"

	"catalogo/internal/service"
	"catalogo/internal/storage"
)

func newAuth(t *testing.T) (*service.AuthService, *service.MockMailer) {
	t.Helper()
	store := storage.NewUserStore(storage.NewMemCollection(), storage.NewMemCollection())
	mailer := &service.MockMailer{}
	return service.NewAuthService(store, mailer), mailer
}

func TestAuthRegisterAndLogin(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "Ana@Example.com", "Ana", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}
	if string(u.PasswordHash) == "s3cret" {
		t.Error("password stored in clear")
	}

	if _, err := auth.Register(ctx, "ana@example.com", "Dup", "x"); err == nil {
		t.Error("duplicate register: want error")
	}

	got, err := auth.Login(ctx, "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("login returned %q, want %q", got.ID, u.ID)
	}

	if _, err := auth.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := auth.Login(ctx, "ghost@example.com", "s3cret"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestAuthPasswordResetFlow(t *testing.T) {
	auth, mailer := newAuth(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "ana@example.com", "Ana", "old-pass"); err != nil {
		t.Fatal(err)
	}

	if err := auth.RequestPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(mailer.Sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mailer.Sent))
	}
	token := mailer.Sent[0].Token

	if err := auth.ResetPassword(ctx, token, "new-pass"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := auth.Login(ctx, "ana@example.com", "new-pass"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := auth.Login(ctx, "ana@example.com", "old-pass"); err == nil {
		t.Error("old password still accepted")
	}

	// tokens are one-shot
	if err := auth.ResetPassword(ctx, token, "again"); err == nil {
		t.Error("consumed token still accepted")
	}
}

func TestAuthResetUnknownEmailIsSilent(t *testing.T) {
	auth, mailer := newAuth(t)

	if err := auth.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Errorf("unknown email should not error: %v", err)
	}
	if len(mailer.Sent) != 0 {
		t.Errorf("mail sent for unknown email")
	}
}

func TestAuthSetAdmin(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	u, err := auth.Register(ctx, "ana@example.com", "Ana", "x")
	if err != nil {
		t.Fatal(err)
	}

	if err := auth.SetAdmin(ctx, u.ID, true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	users, err := auth.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || !users[0].Admin {
		t.Errorf("users = %+v, want admin", users)
	}
}
