package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogo/internal/domain"
)

// UserStore implements domain.UserStore on two document collections:
// one for accounts, one for password-reset tokens.
type UserStore struct {
	users  Collection
	tokens Collection
}

func NewUserStore(users, tokens Collection) *UserStore {
	return &UserStore{users: users, tokens: tokens}
}

func encodeUserDoc(u *domain.User, oid bson.ObjectID) bson.M {
	return bson.M{
		"_id":       oid,
		"Email":     u.Email,
		"Name":      u.Name,
		"Password":  string(u.PasswordHash),
		"Admin":     u.Admin,
		"CreatedAt": u.CreatedAt,
		"UpdatedAt": u.UpdatedAt,
	}
}

func decodeUserDoc(doc bson.M) (*domain.User, error) {
	id, err := decodeDocID(doc["_id"])
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %v", domain.ErrDecode, err)
	}
	admin, _ := doc["Admin"].(bool)
	return &domain.User{
		ID:           id,
		Email:        asString(doc["Email"]),
		Name:         asString(doc["Name"]),
		PasswordHash: []byte(asString(doc["Password"])),
		Admin:        admin,
		CreatedAt:    asTime(doc["CreatedAt"], time.Time{}),
		UpdatedAt:    asTime(doc["UpdatedAt"], time.Time{}),
	}, nil
}

func (s *UserStore) CreateUser(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	oid := bson.NewObjectID()
	u.ID = oid.Hex()

	if _, err := s.users.InsertOne(ctx, encodeUserDoc(u, oid)); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	doc, err := s.users.FindOne(ctx, bson.M{"Email": email})
	if err != nil {
		return nil, err
	}
	return decodeUserDoc(doc)
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q", domain.ErrInvalidReference, id)
	}
	doc, err := s.users.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	return decodeUserDoc(doc)
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	docs, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []domain.User
	for _, doc := range docs {
		u, err := decodeUserDoc(doc)
		if err != nil {
			continue
		}
		users = append(users, *u)
	}
	return users, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, u *domain.User) error {
	oid, err := bson.ObjectIDFromHex(u.ID)
	if err != nil {
		return fmt.Errorf("%w: user id %q", domain.ErrInvalidReference, u.ID)
	}

	u.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"Email":     u.Email,
		"Name":      u.Name,
		"Password":  string(u.PasswordHash),
		"Admin":     u.Admin,
		"UpdatedAt": u.UpdatedAt,
	}}
	if _, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: user id %q", domain.ErrInvalidReference, id)
	}
	deleted, err := s.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return nil
}

// ── reset tokens ───────────────────────────────────────────

func (s *UserStore) SaveResetToken(ctx context.Context, t *domain.PasswordResetToken) error {
	doc := bson.M{
		"_id":       t.Token,
		"UserId":    t.UserID,
		"ExpiresAt": t.ExpiresAt,
	}
	if _, err := s.tokens.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

func (s *UserStore) GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	doc, err := s.tokens.FindOne(ctx, bson.M{"_id": token})
	if err != nil {
		return nil, err
	}
	return &domain.PasswordResetToken{
		Token:     asString(doc["_id"]),
		UserID:    asString(doc["UserId"]),
		ExpiresAt: asTime(doc["ExpiresAt"], time.Time{}),
	}, nil
}

func (s *UserStore) DeleteResetToken(ctx context.Context, token string) error {
	if _, err := s.tokens.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}

func (s *UserStore) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.tokens.DeleteMany(ctx, bson.M{"ExpiresAt": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("sweep reset tokens: %w", err)
	}
	return deleted, nil
}
