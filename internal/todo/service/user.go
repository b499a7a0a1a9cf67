package service

import (
	"context"
	"errors"
	"time"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/cryptox"
	"github.com/listkeeper/listkeeper/pkg/idx"
	"github.com/listkeeper/listkeeper/pkg/slogx"
)

var (
	ErrEmailTaken = errors.New("service: email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell which half of the pair was wrong.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
)

type UserService struct {
	Store store.Store
}

// Register hashes the password and persists a new user. The plaintext never
// leaves this function and the hash never leaves the service layer.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return u, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords produce the identical error, and neither the plaintext nor the
// hash is ever logged.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Hash anyway so a missing account costs the same as a wrong
			// password.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		l.Warn("stored password hash is unreadable", "user_id", u.ID)
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// dummyHash is a well-formed argon2id hash of a random string, used to keep
// login timing flat when the email is unknown.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$PPQ1hCDqL5nx0mlQ2eTzfYhcJsmFzv7IDkZ6kbwyEXE"
