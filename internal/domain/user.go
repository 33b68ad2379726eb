package domain

import (
	"context"
	"time"
)

// User is an account that owns catalogs. Admin users additionally see
// every catalog and manage other accounts.
type User struct {
	ID           string    `json:"id"` // 24-hex document id
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PasswordResetToken is a one-shot token mailed to a user. Expired and
// consumed tokens are swept periodically.
type PasswordResetToken struct {
	Token     string    `json:"token"` // lowercase UUID
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserStore is the persistence contract for accounts and reset tokens.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id string) error

	SaveResetToken(ctx context.Context, t *PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
