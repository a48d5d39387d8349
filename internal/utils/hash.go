package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a user password for storage. Plaintext never
// reaches the store; only the hash is persisted on the User record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
