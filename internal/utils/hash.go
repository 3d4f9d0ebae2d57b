package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext is passed to
// [PasswordHasher.HashPassword].
var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher hashes and verifies user passwords with bcrypt.
//
// Every call to HashPassword generates a fresh salt, so two hashes of the
// same plaintext differ while both verify.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the given bcrypt cost.
// A zero cost falls back to bcrypt.DefaultCost.
//
// Example usage:
//
//	hasher := utils.NewPasswordHasher(cfg.App.PasswordHashCost)
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// HashPassword returns the bcrypt hash of plaintext.
//
// Returns [ErrEmptyPassword] for an empty input and a wrapped bcrypt error
// when the cost is out of range or the input exceeds 72 bytes.
func (h *PasswordHasher) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// The comparison is constant-time; a malformed hash never verifies.
func (h *PasswordHasher) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
