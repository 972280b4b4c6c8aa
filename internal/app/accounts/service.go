// Package accounts covers registration, login and profile updates.
// Passwords are stored as argon2id hashes; sessions are stateless JWTs
// carrying the user's role.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"raffle-server/internal/auth"
	"raffle-server/internal/store"

	"github.com/rs/zerolog/log"
)

type Store interface {
	CreateUser(ctx context.Context, u *store.User) error
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	UpdateUser(ctx context.Context, u *store.User) error
}

type Service struct {
	store  Store
	tokens *auth.Tokens
}

func NewService(st Store, tokens *auth.Tokens) *Service {
	return &Service{store: st, tokens: tokens}
}

// Register creates a user with the given role and logs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput, role string) (*Session, error) {
	if role != store.RoleUser && role != store.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, role)
	}
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if username == "" || email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: username, email and a password of 8+ characters are required", ErrInvalidRequest)
	}

	if err := s.checkAvailable(ctx, username, email, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &store.User{Username: username, Email: email, PasswordHash: hash, Role: role}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// The unique indexes catch a concurrent registration.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Str("role", role).Msg("user registered")

	return s.session(u)
}

// Login verifies the password and issues a token. Role is part of the
// lookup so the admin console and user app authenticate separately
// against the same table.
func (s *Service) Login(ctx context.Context, in LoginInput, role string) (*Session, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if role != "" && u.Role != role {
		return nil, ErrInvalidCredentials
	}
	ok, err := auth.VerifyPassword(in.Password, u.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *Service) Get(ctx context.Context, userID string) (*Account, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	acc := accountOf(u)
	return &acc, nil
}

// UpdateProfile changes username, email and/or password after
// re-verifying the current password, and returns a fresh session.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*Session, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	ok, err := auth.VerifyPassword(in.CurrentPassword, u.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	username := u.Username
	if v := strings.TrimSpace(in.Username); v != "" {
		username = v
	}
	email := u.Email
	if v := strings.TrimSpace(strings.ToLower(in.Email)); v != "" {
		email = v
	}
	if err := s.checkAvailable(ctx, username, email, u.ID); err != nil {
		return nil, err
	}

	hash := u.PasswordHash
	if in.NewPassword != "" {
		if len(in.NewPassword) < 8 {
			return nil, fmt.Errorf("%w: new password must be 8+ characters", ErrInvalidRequest)
		}
		hash, err = auth.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
	}

	u.Username = username
	u.Email = email
	u.PasswordHash = hash
	if err := s.store.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Msg("profile updated")

	return s.session(u)
}

// checkAvailable rejects a username or email already held by a
// different user. excludeID lets a profile update keep its own values.
func (s *Service) checkAvailable(ctx context.Context, username, email, excludeID string) error {
	if existing, err := s.store.GetUserByUsername(ctx, username); err == nil {
		if existing.ID != excludeID {
			return ErrUsernameTaken
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if existing, err := s.store.GetUserByEmail(ctx, email); err == nil {
		if existing.ID != excludeID {
			return ErrEmailTaken
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) session(u *store.User) (*Session, error) {
	token, err := s.tokens.Create(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Account: accountOf(u), Token: token}, nil
}

func accountOf(u *store.User) Account {
	return Account{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
