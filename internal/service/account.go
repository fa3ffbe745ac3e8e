// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the dashboard business logic over the
// key-value store: account registration and login, the persisted
// current-session record, and the site collection.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fedorgrin-lab/cloud/internal/auth"
	"github.com/fedorgrin-lab/cloud/internal/model"
	"github.com/fedorgrin-lab/cloud/internal/store"
)

// Keys of the logical collections in the key-value store. AccountService is
// the only writer of the user and session keys.
const (
	keyUsers       = "cloud:users"
	keyCurrentUser = "cloud:current_user"
)

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("account: email already registered")
	// ErrInvalidCredentials is returned by Login for both unknown emails
	// and wrong passwords, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("account: invalid email or password")
)

// AccountService manages registered users and the persisted current session.
type AccountService struct {
	kv    store.KV
	newID func() string
}

// NewAccountService creates an AccountService backed by kv.
func NewAccountService(kv store.KV) *AccountService {
	return &AccountService{kv: kv, newID: uuid.NewString}
}

// Register creates a new account and logs it in. The email must not match
// any existing user (case-sensitive, exact). When name is empty the local
// part of the email is used. Returns ErrDuplicateEmail without writing
// anything when the email is taken.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:           s.newID(),
		Email:        email,
		Name:         model.DisplayName(email, name),
		PasswordHash: hash,
		Avatar:       model.AvatarURL(email),
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}
	if err := s.setCurrent(ctx, &user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// Login authenticates email/password and persists the current-session
// record. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		if u.Email != email {
			continue
		}

		ok, err := auth.CheckPassword(password, u.PasswordHash)
		if err != nil || !ok {
			slog.Debug("invalid password attempt", "email", email)
			return nil, ErrInvalidCredentials
		}

		// Re-hash transparently if the stored hash uses stale parameters.
		if auth.NeedsRehash(u.PasswordHash) {
			if newHash, err := auth.HashPassword(password); err == nil {
				u.PasswordHash = newHash
				if err := s.saveUsers(ctx, users); err != nil {
					slog.Error("failed to persist re-hashed password", "error", err, "user_id", u.ID)
				}
			}
		}

		if err := s.setCurrent(ctx, u); err != nil {
			return nil, err
		}
		slog.Info("user logged in", "category", model.EventCategoryAuth, "user_id", u.ID, "email", u.Email)
		return u, nil
	}

	slog.Debug("login attempt for non-existent user", "email", email)
	return nil, ErrInvalidCredentials
}

// Logout clears the persisted current-session record.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.kv.Delete(ctx, keyCurrentUser)
}

// Restore returns the persisted current-session user, or nil when no
// session exists. The snapshot is returned verbatim; it is not re-validated
// against the user collection.
func (s *AccountService) Restore(ctx context.Context) (*model.User, error) {
	raw, err := s.kv.Get(ctx, keyCurrentUser)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		slog.Warn("corrupt session record, treating as absent", "error", err)
		return nil, nil
	}
	return &user, nil
}

// GetByID looks up a registered user by id. Returns nil when not found.
func (s *AccountService) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *AccountService) setCurrent(ctx context.Context, user *model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyCurrentUser, raw)
}

// loadUsers reads the user collection. A missing key yields an empty slice;
// corrupt stored bytes are logged and likewise treated as empty.
func (s *AccountService) loadUsers(ctx context.Context) ([]model.User, error) {
	raw, err := s.kv.Get(ctx, keyUsers)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		slog.Warn("corrupt user collection, treating as empty", "error", err)
		return nil, nil
	}
	return users, nil
}

func (s *AccountService) saveUsers(ctx context.Context, users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyUsers, raw)
}
