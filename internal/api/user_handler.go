package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// UserHandler serves the /users routes.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetByID handles GET /users/{userId}.
// A malformed id is rejected before the service is called.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	_, userID, ok := handleUserIDAndPathID(w, r, "userId", log)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PATCH /users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.Name, req.About)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("profile updated", slog.String("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateAvatar handles PATCH /users/me/avatar.
// The updated user is wrapped in {"data": ...}.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return
	}

	var req UpdateAvatarRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	user, err := h.userService.UpdateAvatar(r.Context(), userID, req.Avatar)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("avatar updated", slog.String("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Data: userToResponse(user)})
}
