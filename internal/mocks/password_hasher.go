package mocks

import (
	"errors"
	"strings"

	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// hashPrefix marks values produced by MockPasswordHasher.
const hashPrefix = "mock-hash:"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if len(password) > auth.MaxPasswordBytes {
		return "", auth.ErrPasswordTooLong
	}
	return hashPrefix + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, hashPrefix) || hashedPassword[len(hashPrefix):] != password {
		return errors.New("password mismatch")
	}
	return nil
}
