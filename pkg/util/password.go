package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 12 keeps a login check under ~100ms on current hardware while
// staying expensive for offline cracking.
const bcryptCost = 12

// HashPassword returns the bcrypt hash stored in users.password_hash
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain password matches the stored hash
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// DummyPasswordHash hashes 32 random bytes. Kakao and Firebase accounts
// store it in place of a real credential, so password login can never
// succeed for them while the not-null hash column stays satisfied.
func DummyPasswordHash() (string, error) {
	random, err := RandomHex(32)
	if err != nil {
		return "", err
	}
	return HashPassword(random)
}
