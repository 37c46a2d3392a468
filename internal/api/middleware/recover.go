package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
)

// Recoverer turns a handler panic into a 500 carrying the standard error
// body. http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic while handling request",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))

			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgInternalError,
				fmt.Errorf("recovered panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
