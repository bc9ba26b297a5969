package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

// AdminStore is the credential store consumed by authentication.
// FindByUsername returns model.ErrIdentityNotFound for unknown usernames.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (model.AdminIdentity, error)
	Create(ctx context.Context, identity model.AdminIdentity) error
	Save(ctx context.Context, identity model.AdminIdentity) error
}

type LoginRecorder interface {
	LoginAttempt(result string)
}

type AuthService struct {
	store     AdminStore
	hasher    *PasswordHasher
	tokens    *TokenService
	clock     Clock
	recorder  LoginRecorder
	dummyHash string
}

func NewAuthService(store AdminStore, hasher *PasswordHasher, tokens *TokenService, clock Clock, recorder LoginRecorder) (*AuthService, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	// Unknown usernames are checked against this hash so that both login
	// failure paths spend the same bcrypt work.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare login timing hash: %w", err)
	}

	return &AuthService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		clock:     clock,
		recorder:  recorder,
		dummyHash: dummyHash,
	}, nil
}

// Login verifies credentials and issues a bearer token. Every credential
// failure returns model.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResponse, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.LoginResponse{}, apierror.Validation("username and password are required", "")
	}

	identity, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrIdentityNotFound) {
		_, _ = s.hasher.Verify(password, s.dummyHash)
		slog.Info("login rejected", "username", username, "reason", "unknown_username")
		s.record("unknown_username")
		return model.LoginResponse{}, model.ErrInvalidCredentials
	}
	if err != nil {
		s.record("error")
		return model.LoginResponse{}, fmt.Errorf("lookup admin identity: %w", err)
	}

	ok, err := s.hasher.Verify(password, identity.PasswordHash)
	if err != nil {
		slog.Error("login rejected", "username", username, "reason", "corrupt_hash", "error", err)
		s.record("corrupt_hash")
		return model.LoginResponse{}, model.ErrInvalidCredentials
	}
	if !ok {
		slog.Info("login rejected", "username", username, "reason", "wrong_password")
		s.record("wrong_password")
		return model.LoginResponse{}, model.ErrInvalidCredentials
	}

	now := s.clock.Now().UTC()
	identity.LastLogin = &now
	identity.UpdatedAt = now
	if err := s.store.Save(ctx, identity); err != nil {
		s.record("error")
		return model.LoginResponse{}, fmt.Errorf("record last login: %w", err)
	}

	issued, err := s.tokens.Issue(model.Identity{Username: identity.Username, Role: identity.Role})
	if err != nil {
		s.record("error")
		return model.LoginResponse{}, err
	}

	slog.Info("admin logged in", "username", identity.Username, "role", identity.Role)
	s.record("success")

	return model.LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "bearer",
		ExpiresAt:   issued.ExpiresAt,
		Username:    identity.Username,
		Role:        identity.Role,
	}, nil
}

// CreateAdmin provisions a new identity. It is the only way identities are
// created; there is no rename or delete flow.
func (s *AuthService) CreateAdmin(ctx context.Context, username string, password string, email string, role model.Role) (model.AdminIdentity, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = model.RoleAdmin
	}

	if username == "" {
		return model.AdminIdentity{}, apierror.Validation("username is required", "username")
	}
	if !role.Valid() {
		return model.AdminIdentity{}, apierror.Validation("role must be admin or moderator", string(role))
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return model.AdminIdentity{}, apierror.Validation(
			fmt.Sprintf("password must be between %d and %d bytes", minPasswordLength, maxPasswordLength), "password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.AdminIdentity{}, err
	}

	now := s.clock.Now().UTC()
	identity := model.AdminIdentity{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, identity); err != nil {
		return model.AdminIdentity{}, err
	}

	slog.Info("admin identity created", "username", identity.Username, "role", identity.Role)
	return identity, nil
}

// EnsureAdmin creates the identity unless the username already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username string, password string, email string) error {
	_, err := s.store.FindByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		slog.Debug("admin identity already provisioned", "username", username)
		return nil
	}
	if !errors.Is(err, model.ErrIdentityNotFound) {
		return fmt.Errorf("lookup admin identity: %w", err)
	}

	_, err = s.CreateAdmin(ctx, username, password, email, model.RoleAdmin)
	if errors.Is(err, model.ErrIdentityExists) {
		return nil
	}
	return err
}

func (s *AuthService) record(result string) {
	if s.recorder != nil {
		s.recorder.LoginAttempt(result)
	}
}
