// Package password hashes and verifies the numeric codes staff use to claim a board session.
package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost

	MinPinLength = 4
	MaxPinLength = 8
)

var (
	ErrInvalidPin   = errors.New("invalid pin")
	ErrMalformedPin = errors.New("pin must be 4 to 8 digits")
)

// Validate checks that pin is a 4 to 8 digit code.
func Validate(pin string) error {
	if len(pin) < MinPinLength || len(pin) > MaxPinLength {
		return ErrMalformedPin
	}

	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ErrMalformedPin
		}
	}

	return nil
}

// Hash generates a bcrypt hash of the pin
func Hash(pin string) (string, error) {
	return HashWithCost(pin, DefaultCost)
}

func HashWithCost(pin string, cost int) (string, error) {
	if err := Validate(pin); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}

	return string(bytes), nil
}

// Verify checks if the provided pin matches the hash
func Verify(pin, hash string) error {
	if pin == "" || hash == "" {
		return ErrInvalidPin
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPin
		}

		return fmt.Errorf("failed to verify pin: %w", err)
	}

	return nil
}
