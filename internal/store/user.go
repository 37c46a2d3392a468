package store

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Identifiers passed to it are expected to be canonical (see domain.ParseID).
type UserStore interface {
	// Create saves a new user. The password must already be hashed.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user, including the password hash, by email.
	// The email is matched after normalization.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every user.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile sets name and about and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error)

	// UpdateAvatar sets the avatar URL and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error)
}
