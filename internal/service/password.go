package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/model"
)

// MinBcryptCost is the lowest work factor accepted for stored hashes.
const MinBcryptCost = 12

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < MinBcryptCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", MinBcryptCost, bcrypt.MaxCost, cost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash returns a bcrypt hash with a fresh random salt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hashed. A mismatch is (false, nil);
// a hash that cannot be parsed is (false, model.ErrIntegrity).
func (h *PasswordHasher) Verify(plaintext string, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", model.ErrIntegrity, err)
	}
}
