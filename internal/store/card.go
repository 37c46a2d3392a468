package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card.
	// Returns ErrInvalidEntity if the owner does not exist or a constraint fails.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by id.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// GetByIDForUpdate retrieves a card and locks its row until the
	// surrounding transaction ends. It must be called on a store returned by WithTx.
	// Returns ErrCardNotFound if the card does not exist.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Card, error)

	// List returns every card, newest first.
	List(ctx context.Context) ([]*domain.Card, error)

	// Delete removes a card.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id string) error

	// AddLike adds userID to the card's likes if it is not already present
	// and returns the updated card. The update is a single atomic statement.
	// Returns ErrCardNotFound if the card does not exist.
	AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error)

	// RemoveLike removes userID from the card's likes if present
	// and returns the updated card.
	// Returns ErrCardNotFound if the card does not exist.
	RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error)

	// WithTx returns a CardStore that runs its queries inside tx.
	WithTx(tx *sql.Tx) CardStore

	// DB returns the underlying connection pool, for starting transactions.
	DB() *sql.DB
}
