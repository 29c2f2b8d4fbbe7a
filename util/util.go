package util

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateEmail checks that the address parses and has no display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email address is not valid")
	}
	return nil
}

// ValidatePassword checks a new password against the account rules.
func ValidatePassword(password string) error {
	// bcrypt ignores everything past 72 bytes
	if len(password) < 8 || len(password) > 72 {
		return errors.New("password must be between 8 and 72 characters")
	}
	if !hasRune(password, unicode.IsLetter) {
		return errors.New("password must contain at least one letter")
	}
	if !hasRune(password, unicode.IsDigit) {
		return errors.New("password must contain at least one digit")
	}
	if strings.ContainsAny(password, " \t\n") {
		return errors.New("password must not contain spaces")
	}
	if hasCommonPatterns(password) {
		return errors.New("password contains common patterns or easily guessable words")
	}
	return nil
}

func hasRune(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

func hasCommonPatterns(password string) bool {
	commonPatterns := []string{"password", "123456", "qwerty", "welcome", "admin"}
	lower := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
