package service

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)

	// hash of a random string; compared against when the user does not exist
	dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password-9f2c"), bcrypt.MinCost)
)

func ValidatePassword(pw string) error {
	if len(pw) < 8 || !hasLetter.MatchString(pw) || !hasDigit.MatchString(pw) {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword validates strength then bcrypts with the default cost.
func HashPassword(pw string) (string, error) {
	if err := ValidatePassword(pw); err != nil {
		return "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
