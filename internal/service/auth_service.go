package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Auth service — accounts, login, password reset, admin panel
// ─────────────────────────────────────────────────────────────

// ErrInvalidCredentials is returned on a failed login or password check.
// Deliberately the same for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// resetTokenTTL is how long a mailed reset token stays valid.
const resetTokenTTL = time.Hour

// Mailer delivers password-reset tokens. The transport (SMTP, an email
// API) lives outside this core.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// MockMailer records sent mails for tests.
type MockMailer struct {
	Sent []SentMail

	// Err, when set, is returned by every send.
	Err error
}

// SentMail holds one recorded delivery.
type SentMail struct {
	Email string
	Token string
}

func (m *MockMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{Email: email, Token: token})
	return nil
}

// AuthService manages accounts and authentication.
type AuthService struct {
	users  domain.UserStore
	mailer Mailer
	sweep  *cron.Cron
}

func NewAuthService(users domain.UserStore, mailer Mailer) *AuthService {
	return &AuthService{users: users, mailer: mailer}
}

// Register creates an account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("account %s already exists", email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("[AUTH] Registered %s", email)
	return u, nil
}

// Login verifies the password and returns the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// RequestPasswordReset issues a one-hour token and mails it. An unknown
// email is not an error to the caller, so the endpoint cannot be used to
// probe which accounts exist; the miss is only logged.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("[AUTH] Reset requested for unknown email %s", email)
		return nil
	}
	if err != nil {
		return err
	}

	t := &domain.PasswordResetToken{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.users.SaveResetToken(ctx, t); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, u.Email, t.Token); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	t, err := s.users.GetResetToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: reset token", domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if time.Now().After(t.ExpiresAt) {
		s.users.DeleteResetToken(ctx, token)
		return fmt.Errorf("reset token expired")
	}

	u, err := s.users.GetUser(ctx, t.UserID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return err
	}
	return s.users.DeleteResetToken(ctx, token)
}

// ── admin panel ────────────────────────────────────────────

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// SetAdmin grants or revokes the admin flag.
func (s *AuthService) SetAdmin(ctx context.Context, id string, admin bool) error {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return err
	}
	u.Admin = admin
	return s.users.UpdateUser(ctx, u)
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.users.DeleteUser(ctx, id)
}

// ── token sweep ────────────────────────────────────────────

// StartSweeper begins the hourly purge of expired reset tokens.
func (s *AuthService) StartSweeper() {
	if s.sweep != nil {
		return
	}
	s.sweep = cron.New()
	s.sweep.AddFunc("@hourly", func() {
		n, err := s.users.DeleteExpiredResetTokens(context.Background(), time.Now())
		if err != nil {
			log.Printf("[AUTH] Token sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[AUTH] Swept %d expired reset tokens", n)
		}
	})
	s.sweep.Start()
}

// StopSweeper stops the purge loop.
func (s *AuthService) StopSweeper() {
	if s.sweep != nil {
		s.sweep.Stop()
		s.sweep = nil
	}
}
