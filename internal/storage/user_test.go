package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalogo/internal/domain"
)

func TestUserStoreCreateAndGet(t *testing.T) {
	store := NewUserStore(NewMemCollection(), NewMemCollection())
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com", Name: "Ana", PasswordHash: []byte("hash")}
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(u.ID) != 24 {
		t.Errorf("id = %q, want 24-hex", u.ID)
	}

	got, err := store.GetUserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.Name != "Ana" || string(got.PasswordHash) != "hash" {
		t.Errorf("got = %+v", got)
	}

	byID, err := store.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != u.Email {
		t.Errorf("byID = %+v", byID)
	}

	if _, err := store.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
}

func TestUserStoreUpdateAndDelete(t *testing.T) {
	store := NewUserStore(NewMemCollection(), NewMemCollection())
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com"}
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	u.Admin = true
	u.Name = "Ana"
	if err := store.UpdateUser(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Admin || got.Name != "Ana" {
		t.Errorf("got = %+v", got)
	}

	if err := store.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteUser(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUserStoreResetTokenSweep(t *testing.T) {
	store := NewUserStore(NewMemCollection(), NewMemCollection())
	ctx := context.Background()
	now := time.Now()

	expired := &domain.PasswordResetToken{Token: "old", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}
	live := &domain.PasswordResetToken{Token: "new", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	if err := store.SaveResetToken(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveResetToken(ctx, live); err != nil {
		t.Fatal(err)
	}

	swept, err := store.DeleteExpiredResetTokens(ctx, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	if _, err := store.GetResetToken(ctx, "old"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expired token still readable: %v", err)
	}
	got, err := store.GetResetToken(ctx, "new")
	if err != nil {
		t.Fatalf("live token: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("got = %+v", got)
	}
}
