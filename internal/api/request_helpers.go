package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// getUserIDFromContext extracts the authenticated user's id from the request context.
// The id is placed there by the authentication middleware.
func getUserIDFromContext(r *http.Request) (string, bool) {
	return shared.GetUserID(r.Context())
}

// getPathID extracts an object id from the URL path parameters and returns it
// in canonical form. Malformed ids yield a validation error wrapping
// domain.ErrInvalidID.
func getPathID(r *http.Request, paramName string) (string, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := domain.ParseID(pathParam)
	if err != nil {
		return "", domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// handleUserIDFromContext returns the caller's id, writing a 401 response
// when the request was not authenticated.
func handleUserIDFromContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, auth.ErrMissingToken)
		return "", false
	}
	return userID, true
}

// handleUserIDAndPathID combines handleUserIDFromContext and getPathID.
// It writes the error response itself when either step fails.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (string, string, bool) {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	userID, ok := handleUserIDFromContext(w, r, log)
	if !ok {
		return "", "", false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return "", "", false
	}

	return userID, pathID, true
}

// parseAndValidateRequest decodes the JSON body into req and validates it.
// On failure it writes a 400 response and returns false.
func parseAndValidateRequest(w http.ResponseWriter, r *http.Request, req interface{}, log *slog.Logger) bool {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("invalid request body", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("request validation failed", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err)
		return false
	}

	return true
}
