package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

const cardColumns = `id, name, link, owner_id, likes, created_at`

const (
	insertCardSQL = `
		INSERT INTO cards (id, name, link, owner_id, likes, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)`

	selectCardByIDSQL = `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	selectCardForUpdateSQL = selectCardByIDSQL + ` FOR UPDATE`

	selectCardsSQL = `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC, id DESC`

	deleteCardSQL = `DELETE FROM cards WHERE id = $1`

	// The user id is appended only when absent, so likes stays a set.
	addCardLikeSQL = `
		UPDATE cards
		SET likes = CASE WHEN likes ? $2::text THEN likes ELSE likes || to_jsonb($2::text) END
		WHERE id = $1
		RETURNING ` + cardColumns

	// jsonb - text removes every matching string element.
	removeCardLikeSQL = `
		UPDATE cards
		SET likes = likes - $2::text
		WHERE id = $1
		RETURNING ` + cardColumns
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db *sql.DB, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		pool:   db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card  domain.Card
		likes []byte
	)
	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.Link,
		&card.OwnerID,
		&likes,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Likes = []string{}
	if len(likes) > 0 {
		if err := json.Unmarshal(likes, &card.Likes); err != nil {
			return nil, fmt.Errorf("failed to decode likes for card %s: %w", card.ID, err)
		}
	}
	card.CreatedAt = card.CreatedAt.UTC()
	return &card, nil
}

// Create implements store.CardStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", card.ID))
		return err
	}

	likes := card.Likes
	if likes == nil {
		likes = []string{}
	}
	likesJSON, err := json.Marshal(likes)
	if err != nil {
		return store.NewStoreError("card", "create", "failed to encode likes", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		insertCardSQL,
		card.ID,
		card.Name,
		card.Link,
		card.OwnerID,
		string(likesJSON),
		card.CreatedAt,
	)
	if err != nil {
		err = MapError(err, nil)
		log.Error("failed to create card",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", card.ID),
			slog.String("owner_id", card.OwnerID))
		return err
	}

	log.Info("card created",
		slog.String("card_id", card.ID),
		slog.String("owner_id", card.OwnerID))
	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return s.get(ctx, selectCardByIDSQL, id)
}

// GetByIDForUpdate implements store.CardStore.GetByIDForUpdate.
func (s *PostgresCardStore) GetByIDForUpdate(ctx context.Context, id string) (*domain.Card, error) {
	return s.get(ctx, selectCardForUpdateSQL, id)
}

func (s *PostgresCardStore) get(ctx context.Context, query, id string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		err = MapError(err, store.ErrCardNotFound)
		if store.IsNotFoundError(err) {
			log.Debug("card not found", slog.String("card_id", id))
			return nil, err
		}
		log.Error("failed to get card by ID",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", id))
		return nil, err
	}

	return card, nil
}

// List implements store.CardStore.List.
func (s *PostgresCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, selectCardsSQL)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("card", "list", "failed to scan row", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("card", "list", "failed to iterate rows", err)
	}

	log.Debug("listed cards", slog.Int("count", len(cards)))
	return cards, nil
}

// Delete implements store.CardStore.Delete.
func (s *PostgresCardStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteCardSQL, id)
	if err != nil {
		err = MapError(err, store.ErrCardNotFound)
		log.Error("failed to delete card",
			slog.String("error", redact.Error(err)),
			slog.String("card_id", id))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		log.Debug("card not found for delete", slog.String("card_id", id))
		return err
	}

	log.Info("card deleted", slog.String("card_id", id))
	return nil
}

// AddLike implements store.CardStore.AddLike.
func (s *PostgresCardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, "like", addCardLikeSQL, cardID, userID)
}

// RemoveLike implements store.CardStore.RemoveLike.
func (s *PostgresCardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, "dislike", removeCardLikeSQL, cardID, userID)
}

func (s *PostgresCardStore) updateLikes(
	ctx context.Context,
	operation, query, cardID, userID string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, cardID, userID))
	if err != nil {
		err = MapError(err, store.ErrCardNotFound)
		if store.IsNotFoundError(err) {
			log.Debug("card not found",
				slog.String("operation", operation),
				slog.String("card_id", cardID))
			return nil, err
		}
		log.Error("failed to update card likes",
			slog.String("error", redact.Error(err)),
			slog.String("operation", operation),
			slog.String("card_id", cardID),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("card", operation, "failed to update likes", err)
	}

	log.Debug("card likes updated",
		slog.String("operation", operation),
		slog.String("card_id", cardID),
		slog.String("user_id", userID),
		slog.Int("likes", len(card.Likes)))
	return card, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		pool:   s.pool,
		logger: s.logger,
	}
}

// DB implements store.CardStore.DB.
func (s *PostgresCardStore) DB() *sql.DB {
	return s.pool
}
