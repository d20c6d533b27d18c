package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("Username and passcode required")
	ErrInvalidPasscode    = errors.New("Passcode must be 4 digits")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

func HashPassword(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ComparePassword(hash, passcode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}

// ValidateCredentials trims the username and checks the passcode shape.
func ValidateCredentials(username, passcode string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || passcode == "" {
		return "", ErrMissingCredentials
	}
	if len(passcode) != 4 {
		return "", ErrInvalidPasscode
	}
	for _, c := range passcode {
		if c < '0' || c > '9' {
			return "", ErrInvalidPasscode
		}
	}
	return username, nil
}
