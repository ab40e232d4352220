package security

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor. Fixed; bumping it only affects newly written hashes.
const hashCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is
// generated per call by the primitive itself.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a stored bcrypt hash with a plaintext candidate.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
