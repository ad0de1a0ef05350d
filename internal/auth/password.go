package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is used when a hasher is built without explicit config.
const DefaultBcryptCost = 12

// HashPassword produces a salted bcrypt hash of plaintext at the given cost.
func HashPassword(plaintext string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// Malformed hashes fail closed: the answer is false, never an error.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
