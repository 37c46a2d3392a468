package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// Confirmation messages returned by card mutations.
const (
	MessageCardDeleted = "Карточка удалена"
	MessageCardLiked   = "Лайк"
	MessageCardUnliked = "Лайк снят"
)

// CardService provides card-related operations
type CardService interface {
	// ListCards returns every card, newest first.
	ListCards(ctx context.Context) ([]*domain.Card, error)

	// CreateCard creates a card owned by ownerID.
	CreateCard(ctx context.Context, ownerID, name, link string) (*domain.Card, error)

	// DeleteCard removes a card owned by userID.
	// Returns ErrNotOwned if another user owns the card.
	DeleteCard(ctx context.Context, userID, cardID string) error

	// LikeCard adds userID to the card's likes. Repeating it has no effect.
	LikeCard(ctx context.Context, userID, cardID string) (*domain.Card, error)

	// DislikeCard removes userID from the card's likes. Repeating it has no effect.
	DislikeCard(ctx context.Context, userID, cardID string) (*domain.Card, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCardService creates a new CardService
// It returns an error if any of the required dependencies are nil.
func NewCardService(cards store.CardStore, logger *slog.Logger) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, ownerID, name, link string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(ownerID, name, link)
	if err != nil {
		return nil, NewCardServiceError("create_card", "invalid input", err)
	}

	if err := s.cards.Create(ctx, card); err != nil {
		log.Error("failed to save card",
			slog.String("error", redact.Error(err)),
			slog.String("owner_id", ownerID))
		return nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard
// The card row is locked between the ownership check and the delete.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := domain.ParseID(cardID)
	if err != nil {
		return NewCardServiceError("delete_card", "malformed card id", err)
	}

	err = store.RunInTransaction(ctx, s.cards.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		card, err := txCards.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !card.IsOwnedBy(userID) {
			log.Warn("attempt to delete card owned by another user",
				slog.String("user_id", userID),
				slog.String("card_id", id),
				slog.String("owner_id", card.OwnerID))
			return ErrNotOwned
		}

		return txCards.Delete(ctx, id)
	})
	if err != nil {
		return s.wrapError("delete_card", err)
	}

	log.Info("card deleted",
		slog.String("user_id", userID),
		slog.String("card_id", id))
	return nil
}

// LikeCard implements CardService.LikeCard
func (s *cardServiceImpl) LikeCard(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	id, err := domain.ParseID(cardID)
	if err != nil {
		return nil, NewCardServiceError("like_card", "malformed card id", err)
	}

	card, err := s.cards.AddLike(ctx, id, userID)
	if err != nil {
		return nil, s.wrapError("like_card", err)
	}
	return card, nil
}

// DislikeCard implements CardService.DislikeCard
func (s *cardServiceImpl) DislikeCard(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	id, err := domain.ParseID(cardID)
	if err != nil {
		return nil, NewCardServiceError("dislike_card", "malformed card id", err)
	}

	card, err := s.cards.RemoveLike(ctx, id, userID)
	if err != nil {
		return nil, s.wrapError("dislike_card", err)
	}
	return card, nil
}

func (s *cardServiceImpl) wrapError(operation string, err error) error {
	switch {
	case store.IsNotFoundError(err):
		return NewCardServiceError(operation, "card not found", store.ErrCardNotFound)
	case errors.Is(err, ErrNotOwned):
		return NewCardServiceError(operation, "card owned by another user", ErrNotOwned)
	default:
		return NewCardServiceError(operation, "operation failed", err)
	}
}
