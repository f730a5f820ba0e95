package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. The cost is embedded in the hash
// together with the per-call salt, so it can be raised later without
// invalidating already-stored hashes.
const hashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of the plaintext password.
// Each call uses a fresh random salt, so hashing is non-deterministic.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. A malformed hash verifies as false, never panics.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
