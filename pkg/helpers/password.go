package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-blog-backend/internal/domain/apperr"
)

// DefaultBcryptCost is used when no valid cost is configured.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
// The produced hash embeds its salt and cost.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher returns a hasher using cost, or DefaultBcryptCost when
// cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{Cost: cost}
}

// Hash hashes the plain text password. Empty input is rejected before any
// work is done.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", apperr.InvalidInput("password is required")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.InvalidInput("password must be at most 72 bytes")
		}
		return "", apperr.Internal("hash password", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches hash. A malformed hash yields false.
func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
