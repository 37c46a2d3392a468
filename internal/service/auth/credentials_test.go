package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type lookupFunc func(ctx context.Context, email string) (*domain.User, error)

func (f lookupFunc) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f(ctx, email)
}

// countingHasher records how many comparisons were made.
type countingHasher struct {
	*BcryptHasher
	compares int
}

func (h *countingHasher) Compare(hashedPassword, password string) error {
	h.compares++
	return h.BcryptHasher.Compare(hashedPassword, password)
}

func TestCredentialVerifier(t *testing.T) {
	base := NewBcryptHasher(bcrypt.MinCost)
	hash, err := base.Hash("s3cret-pass")
	require.NoError(t, err)
	user := &domain.User{ID: domain.NewID(), Email: "ann@example.com", HashedPassword: hash}

	lookup := lookupFunc(func(ctx context.Context, email string) (*domain.User, error) {
		switch email {
		case "ann@example.com":
			return user, nil
		case "broken@example.com":
			return nil, errors.New("connection refused")
		default:
			return nil, store.ErrUserNotFound
		}
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "ann@example.com", "s3cret-pass", false},
		{"wrong password", "ann@example.com", "nope", true},
		{"unknown email", "ghost@example.com", "s3cret-pass", true},
		{"store failure", "broken@example.com", "s3cret-pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := &countingHasher{BcryptHasher: base}
			verifier := NewCredentialVerifier(lookup, hasher, nil)

			got, err := verifier.Verify(context.Background(), tt.email, tt.password)

			assert.Equal(t, 1, hasher.compares, "every path performs exactly one comparison")
			if tt.wantErr {
				assert.Nil(t, got)
				assert.Equal(t, ErrInvalidCredentials, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestNewCredentialVerifierRequiresDependencies(t *testing.T) {
	lookup := lookupFunc(func(ctx context.Context, email string) (*domain.User, error) { return nil, nil })

	assert.Panics(t, func() { NewCredentialVerifier(nil, NewBcryptHasher(bcrypt.MinCost), nil) })
	assert.Panics(t, func() { NewCredentialVerifier(lookup, nil, nil) })
}

// brokenHashHasher cannot hash but records what Compare receives.
type brokenHashHasher struct {
	*BcryptHasher
	compared []string
}

func (h *brokenHashHasher) Hash(string) (string, error) {
	return "", errors.New("entropy source unavailable")
}

func (h *brokenHashHasher) Compare(hashedPassword, password string) error {
	h.compared = append(h.compared, hashedPassword)
	return h.BcryptHasher.Compare(hashedPassword, password)
}

func TestCredentialVerifierUnknownEmailAlwaysComparesRealHash(t *testing.T) {
	lookup := lookupFunc(func(ctx context.Context, email string) (*domain.User, error) {
		return nil, store.ErrUserNotFound
	})

	t.Run("dummy hash computed at construction", func(t *testing.T) {
		hasher := &countingHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost)}
		verifier := NewCredentialVerifier(lookup, hasher, nil)

		require.NotEmpty(t, verifier.dummyHash)
		cost, err := bcrypt.Cost([]byte(verifier.dummyHash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("hasher failure falls back to a precomputed hash", func(t *testing.T) {
		hasher := &brokenHashHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost)}
		verifier := NewCredentialVerifier(lookup, hasher, nil)

		_, err := verifier.Verify(context.Background(), "ghost@example.com", "s3cret-pass")

		assert.Equal(t, ErrInvalidCredentials, err)
		require.Len(t, hasher.compared, 1)
		assert.Equal(t, fallbackDummyHash, hasher.compared[0])
		cost, err := bcrypt.Cost([]byte(hasher.compared[0]))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}
