package helper

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 10 mengikuti perilaku backend lama.
const bcryptCost = 10

// HashPassword menghasilkan hash bcrypt dari password plaintext.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash membandingkan hash tersimpan dengan password input.
func CheckPasswordHash(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
