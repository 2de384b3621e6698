// Package accounts implements user registration and authentication.
package accounts

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoplite/shoplite/internal/app/domain/user"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/internal/apperr"
	"github.com/shoplite/shoplite/pkg/logger"
)

const (
	msgFieldsRequired    = "Email and password are required."
	msgEmailTaken        = "User with this email already exists."
	msgInvalidCredential = "Invalid credentials."
)

// Service manages user records.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs an account service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accounts")
	}
	return &Service{store: store, log: log}
}

// Signup registers a new user. The password is stored only as a bcrypt hash;
// the raw value never reaches the store or the logs. Email matching is a
// case-sensitive exact comparison.
func (s *Service) Signup(ctx context.Context, email, password string) (user.Public, error) {
	if email == "" || password == "" {
		return user.Public{}, apperr.Validation(msgFieldsRequired)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return user.Public{}, apperr.Conflict(msgEmailTaken)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return user.Public{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.Public{}, err
	}

	created, err := s.store.CreateUser(ctx, user.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		// The store enforces uniqueness under its own lock, so a racing
		// signup surfaces here rather than as a lost write.
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return user.Public{}, apperr.Conflict(msgEmailTaken)
		}
		return user.Public{}, err
	}

	s.log.Infof("user %d registered", created.ID)
	return created.Public(), nil
}

// Login authenticates a user by email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (user.Public, error) {
	if email == "" || password == "" {
		return user.Public{}, apperr.Validation(msgFieldsRequired)
	}

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.Public{}, apperr.Unauthorized(msgInvalidCredential)
		}
		return user.Public{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.Public{}, apperr.Unauthorized(msgInvalidCredential)
	}

	s.log.Infof("user %d logged in", u.ID)
	return u.Public(), nil
}
