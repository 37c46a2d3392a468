package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

const userColumns = `id, name, about, avatar, email, password_hash`

const (
	insertUserSQL = `
		INSERT INTO users (id, name, about, avatar, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)`

	selectUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	selectUsersSQL = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	updateUserProfileSQL = `
		UPDATE users SET name = $2, about = $3
		WHERE id = $1
		RETURNING ` + userColumns

	updateUserAvatarSQL = `
		UPDATE users SET avatar = $2
		WHERE id = $1
		RETURNING ` + userColumns
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.About,
		&user.Avatar,
		&user.Email,
		&user.HashedPassword,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists if the email is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID))
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		insertUserSQL,
		user.ID,
		user.Name,
		user.About,
		user.Avatar,
		user.Email,
		user.HashedPassword,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("user_id", user.ID))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID))
		return MapError(err, store.ErrUserNotFound)
	}

	log.Info("user created", slog.String("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		err = MapError(err, store.ErrUserNotFound)
		if store.IsNotFoundError(err) {
			log.Debug("user not found", slog.String("user_id", id))
			return nil, err
		}
		log.Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx, selectUserByEmailSQL, domain.NormalizeEmail(email)))
	if err != nil {
		err = MapError(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(err) {
			log.Error("failed to get user by email", slog.String("error", redact.Error(err)))
		}
		return nil, err
	}

	return user, nil
}

// List implements store.UserStore.List.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("user", "list", "failed to scan row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to iterate rows", err)
	}

	log.Debug("listed users", slog.Int("count", len(users)))
	return users, nil
}

// UpdateProfile implements store.UserStore.UpdateProfile.
func (s *PostgresUserStore) UpdateProfile(
	ctx context.Context,
	id, name, about string,
) (*domain.User, error) {
	return s.update(ctx, "update_profile", updateUserProfileSQL, id, name, about)
}

// UpdateAvatar implements store.UserStore.UpdateAvatar.
func (s *PostgresUserStore) UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error) {
	return s.update(ctx, "update_avatar", updateUserAvatarSQL, id, avatar)
}

func (s *PostgresUserStore) update(
	ctx context.Context,
	operation, query, id string,
	args ...any,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		err = MapError(err, store.ErrUserNotFound)
		if store.IsNotFoundError(err) {
			log.Debug("user not found for update",
				slog.String("operation", operation),
				slog.String("user_id", id))
			return nil, err
		}
		log.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("operation", operation),
			slog.String("user_id", id))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	log.Info("user updated",
		slog.String("operation", operation),
		slog.String("user_id", id))
	return user, nil
}
