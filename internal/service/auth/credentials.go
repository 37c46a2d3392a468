package auth

import (
	"context"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// fallbackDummyHash is a cost-10 bcrypt hash used for unknown emails when the
// configured hasher cannot produce one at construction time.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserLookup is the subset of store.UserStore needed to verify credentials.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialVerifier checks an email/password pair against stored users.
type CredentialVerifier struct {
	users  UserLookup
	hasher PasswordHasher
	logger *slog.Logger

	// dummyHash is compared against when the email is unknown.
	dummyHash string
}

// NewCredentialVerifier creates a CredentialVerifier.
// It panics if users or hasher is nil.
func NewCredentialVerifier(users UserLookup, hasher PasswordHasher, logger *slog.Logger) *CredentialVerifier {
	if users == nil {
		panic("users cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "credential_verifier"))

	dummyHash, err := hasher.Hash("mesto-placeholder-password")
	if err != nil {
		log.Warn("failed to compute dummy hash, using fallback", slog.String("error", redact.Error(err)))
		dummyHash = fallbackDummyHash
	}

	return &CredentialVerifier{
		users:     users,
		hasher:    hasher,
		logger:    log,
		dummyHash: dummyHash,
	}
}

// Verify returns the user matching email and password.
// Every failure is reported as ErrInvalidCredentials. Unknown emails still
// pay for one hash comparison so response times do not reveal which emails exist.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("credential lookup failed", slog.String("error", redact.Error(err)))
		}
		_ = v.hasher.Compare(v.dummyHash, password)
		return nil, ErrInvalidCredentials
	}

	if err := v.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
