// Package secrets hashes and checks account passwords.
package secrets

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "tcis/pkg/domain-errors"
)

// MinCost is the cheapest bcrypt cost, used by in-memory backends and tests.
const MinCost = bcrypt.MinCost

// HashPassword hashes password at the given bcrypt cost.
func HashPassword(password string, cost int) ([]byte, error) {
	if password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return hashed, nil
}

// VerifyPassword reports a CodeUnauthorized error when password does not match hash.
func VerifyPassword(hash []byte, password string) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify password")
	}
	return nil
}
