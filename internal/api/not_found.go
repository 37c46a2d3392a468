package api

import (
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
)

// NotFound answers requests for routes that do not exist.
// Unsupported methods on known paths get the same response.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, msgRouteNotFound)
}
