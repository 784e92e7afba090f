package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// HashPassword hashes a plaintext password with bcrypt. The salt is
// random per call, so equal plaintexts never produce equal hashes.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
