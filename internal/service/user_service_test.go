package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/mocks"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc    service.UserService
	users  *mocks.MockUserStore
	hasher *mocks.MockPasswordHasher
	tokens *mocks.MockJWTService
}

func newUserFixture(t *testing.T, existing ...*domain.User) *userFixture {
	t.Helper()
	users := mocks.NewMockUserStore(existing...)
	hasher := &mocks.MockPasswordHasher{}
	tokens := &mocks.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID string) (string, error) {
			return "token-for-" + userID, nil
		},
	}
	verifier := auth.NewCredentialVerifier(users, hasher, nil)

	svc, err := service.NewUserService(users, hasher, verifier, tokens, nil)
	require.NoError(t, err)
	return &userFixture{svc: svc, users: users, hasher: hasher, tokens: tokens}
}

func existingUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := (&mocks.MockPasswordHasher{}).Hash(password)
	require.NoError(t, err)
	user, err := domain.NewUser(email, hash, "", "", "")
	require.NoError(t, err)
	return user
}

func TestNewUserServiceValidatesDependencies(t *testing.T) {
	users := mocks.NewMockUserStore()
	hasher := &mocks.MockPasswordHasher{}
	verifier := auth.NewCredentialVerifier(users, hasher, nil)
	tokens := &mocks.MockJWTService{}

	_, err := service.NewUserService(nil, hasher, verifier, tokens, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(users, nil, verifier, tokens, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(users, hasher, nil, tokens, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(users, hasher, verifier, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and applies defaults", func(t *testing.T) {
		f := newUserFixture(t)

		user, err := f.svc.CreateUser(ctx, service.CreateUserInput{Email: "Ann@Example.com", Password: "pw123456"})

		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", user.Email)
		assert.Equal(t, domain.DefaultUserName, user.Name)
		assert.NotEqual(t, "pw123456", user.HashedPassword)
		assert.NoError(t, f.hasher.Compare(user.HashedPassword, "pw123456"))

		stored, err := f.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.HashedPassword, stored.HashedPassword)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		f := newUserFixture(t, existingUser(t, "ann@example.com", "pw"))

		_, err := f.svc.CreateUser(ctx, service.CreateUserInput{Email: "ANN@example.com", Password: "pw123456"})

		assert.ErrorIs(t, err, store.ErrEmailExists)
		var svcErr *service.UserServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_user", svcErr.Operation)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		inputs := map[string]service.CreateUserInput{
			"missing password": {Email: "a@b.com"},
			"long password":    {Email: "a@b.com", Password: strings.Repeat("x", 73)},
			"bad email":        {Email: "nope", Password: "pw123456"},
			"short name":       {Email: "a@b.com", Password: "pw123456", Name: "A"},
			"bad avatar":       {Email: "a@b.com", Password: "pw123456", Avatar: "not a url"},
		}
		for name, input := range inputs {
			t.Run(name, func(t *testing.T) {
				f := newUserFixture(t)

				_, err := f.svc.CreateUser(ctx, input)

				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Zero(t, f.users.Calls)
			})
		}
	})

	t.Run("hashing failure is internal", func(t *testing.T) {
		f := newUserFixture(t)
		hashErr := errors.New("entropy exhausted")
		f.hasher.HashFn = func(string) (string, error) { return "", hashErr }

		_, err := f.svc.CreateUser(ctx, service.CreateUserInput{Email: "a@b.com", Password: "pw123456"})

		assert.ErrorIs(t, err, hashErr)
		assert.NotErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t, "ann@example.com", "pw")

	t.Run("found", func(t *testing.T) {
		f := newUserFixture(t, user)

		got, err := f.svc.GetUser(ctx, strings.ToUpper(user.ID))

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("malformed id is rejected before the store", func(t *testing.T) {
		f := newUserFixture(t, user)

		_, err := f.svc.GetUser(ctx, "123")

		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.Zero(t, f.users.Calls)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newUserFixture(t, user)

		_, err := f.svc.GetUser(ctx, domain.NewID())

		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	f := newUserFixture(t, existingUser(t, "a@example.com", "pw"), existingUser(t, "b@example.com", "pw"))

	users, err := f.svc.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t, "ann@example.com", "pw")

	t.Run("updates name and about", func(t *testing.T) {
		f := newUserFixture(t, user)

		got, err := f.svc.UpdateProfile(ctx, user.ID, "Ann", "Captain")

		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, "Captain", got.About)
	})

	t.Run("invalid about", func(t *testing.T) {
		f := newUserFixture(t, user)

		_, err := f.svc.UpdateProfile(ctx, user.ID, "Ann", strings.Repeat("a", 31))

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, f.users.Calls)
	})

	t.Run("caller no longer exists", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.svc.UpdateProfile(ctx, user.ID, "Ann", "Captain")

		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserService_UpdateAvatar(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t, "ann@example.com", "pw")

	t.Run("updates avatar", func(t *testing.T) {
		f := newUserFixture(t, user)

		got, err := f.svc.UpdateAvatar(ctx, user.ID, "https://example.com/me.png")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/me.png", got.Avatar)
	})

	t.Run("rejects non-url", func(t *testing.T) {
		f := newUserFixture(t, user)

		_, err := f.svc.UpdateAvatar(ctx, user.ID, "javascript:alert(1)")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t, "ann@example.com", "s3cret")

	t.Run("returns token for valid credentials", func(t *testing.T) {
		f := newUserFixture(t, user)

		token, err := f.svc.Login(ctx, "Ann@example.com", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "token-for-"+user.ID, token)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		f := newUserFixture(t, user)

		_, wrongPassword := f.svc.Login(ctx, "ann@example.com", "nope")
		_, unknownEmail := f.svc.Login(ctx, "ghost@example.com", "s3cret")

		assert.Equal(t, auth.ErrInvalidCredentials, wrongPassword)
		assert.Equal(t, auth.ErrInvalidCredentials, unknownEmail)
	})

	t.Run("store failure collapses to invalid credentials", func(t *testing.T) {
		f := newUserFixture(t, user)
		f.users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		}

		_, err := f.svc.Login(ctx, "ann@example.com", "s3cret")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("token failure is internal", func(t *testing.T) {
		f := newUserFixture(t, user)
		signErr := errors.New("sign failed")
		f.tokens.GenerateTokenFn = func(ctx context.Context, userID string) (string, error) {
			return "", signErr
		}

		_, err := f.svc.Login(ctx, "ann@example.com", "s3cret")

		assert.ErrorIs(t, err, signErr)
	})
}
