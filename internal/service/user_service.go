package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CreateUserInput carries the fields accepted at sign-up.
// Empty profile fields are replaced with defaults.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// Authenticator verifies an email/password pair.
type Authenticator interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// UserService provides user-related operations
type UserService interface {
	// ListUsers returns every registered user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by id. A malformed id yields domain.ErrInvalidID
	// without touching the store.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// CreateUser hashes the password and persists a new user.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// UpdateProfile changes the caller's name and about fields.
	UpdateProfile(ctx context.Context, userID, name, about string) (*domain.User, error)

	// UpdateAvatar changes the caller's avatar URL.
	UpdateAvatar(ctx context.Context, userID, avatar string) (*domain.User, error)

	// Login verifies credentials and returns a signed token.
	// Every failure is reported as auth.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}

type userServiceImpl struct {
	users         store.UserStore
	hasher        auth.PasswordHasher
	authenticator Authenticator
	tokens        auth.JWTService
	logger        *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	authenticator Authenticator,
	tokens auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if authenticator == nil {
		return nil, domain.NewValidationError("authenticator", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:         users,
		hasher:        hasher,
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger.With(slog.String("component", "user_service")),
	}, nil
}

// ListUsers implements UserService.ListUsers
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewUserServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

// GetUser implements UserService.GetUser
func (s *userServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := domain.ParseID(userID)
	if err != nil {
		return nil, NewUserServiceError("get_user", "malformed user id", err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found", slog.String("user_id", id))
			return nil, NewUserServiceError("get_user", "user not found", store.ErrUserNotFound)
		}
		return nil, NewUserServiceError("get_user", "failed to retrieve user", err)
	}

	return user, nil
}

// CreateUser implements UserService.CreateUser
func (s *userServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if input.Password == "" {
		return nil, NewUserServiceError("create_user", "invalid input",
			domain.NewValidationError("password", "is required", domain.ErrValidation))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, NewUserServiceError("create_user", "invalid input",
				domain.NewValidationError("password", "must be at most 72 bytes", domain.ErrValidation))
		}
		return nil, NewUserServiceError("create_user", "failed to hash password", err)
	}

	user, err := domain.NewUser(input.Email, hash, input.Name, input.About, input.Avatar)
	if err != nil {
		return nil, NewUserServiceError("create_user", "invalid input", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to create user with existing email")
			return nil, NewUserServiceError("create_user", "email already registered", store.ErrEmailExists)
		}
		return nil, NewUserServiceError("create_user", "failed to save user", err)
	}

	log.Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile
func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	userID, name, about string,
) (*domain.User, error) {
	if err := domain.ValidateProfile(name, about); err != nil {
		return nil, NewUserServiceError("update_profile", "invalid input", err)
	}

	user, err := s.users.UpdateProfile(ctx, userID, name, about)
	if err != nil {
		return nil, s.wrapUpdateError("update_profile", err)
	}
	return user, nil
}

// UpdateAvatar implements UserService.UpdateAvatar
func (s *userServiceImpl) UpdateAvatar(ctx context.Context, userID, avatar string) (*domain.User, error) {
	if err := domain.ValidateAvatar(avatar); err != nil {
		return nil, NewUserServiceError("update_avatar", "invalid input", err)
	}

	user, err := s.users.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, s.wrapUpdateError("update_avatar", err)
	}
	return user, nil
}

func (s *userServiceImpl) wrapUpdateError(operation string, err error) error {
	if store.IsNotFoundError(err) {
		return NewUserServiceError(operation, "user not found", store.ErrUserNotFound)
	}
	return NewUserServiceError(operation, "failed to update user", err)
}

// Login implements UserService.Login
func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.authenticator.Verify(ctx, email, password)
	if err != nil {
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID))
		return "", NewUserServiceError("login", "failed to issue token", err)
	}

	log.Debug("user signed in", slog.String("user_id", user.ID))
	return token, nil
}
