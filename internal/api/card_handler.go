package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// List handles GET /cards. The body is a bare JSON array, newest card first.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// Create handles POST /cards. The caller becomes the card's owner.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req CreateCardRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), userID, req.Name, req.Link)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("card created",
		slog.String("user_id", userID),
		slog.String("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// Delete handles DELETE /cards/{cardId}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "cardId", log)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: service.MessageCardDeleted})
}

// Like handles PUT /cards/{cardId}/likes.
func (h *CardHandler) Like(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "cardId", log)
	if !ok {
		return
	}

	if _, err := h.cardService.LikeCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: service.MessageCardLiked})
}

// Dislike handles DELETE /cards/{cardId}/likes.
func (h *CardHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := handleUserIDAndPathID(w, r, "cardId", log)
	if !ok {
		return
	}

	if _, err := h.cardService.DislikeCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: service.MessageCardUnliked})
}
