// Package auth provides password hashing and authenticated request context.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used by the seeding script. bcrypt embeds the
// cost in the hash, so verification works across cost changes.
const bcryptCost = 10

// ErrMismatchedPassword indicates the password does not match the stored hash.
var ErrMismatchedPassword = errors.New("password does not match")

// HashPassword creates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant time over the derived key.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err != nil {
		return ErrMismatchedPassword
	}
	return nil
}
