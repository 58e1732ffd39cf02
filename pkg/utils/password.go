package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// bcrypt silently truncates input beyond 72 bytes; reject instead.
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword generates a bcrypt hash from a plain text password
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// ComparePassword compares a bcrypt hashed password with plain text password
func ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
