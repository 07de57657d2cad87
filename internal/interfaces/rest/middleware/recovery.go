package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/Zxen1/Events-Platform-sub005/internal/interfaces/rest"
)

// Recovery creates middleware that recovers from panics and returns 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(
						"panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					rest.WriteJSON(w, http.StatusInternalServerError, rest.ErrorResponse{
						Success: false,
						Message: "internal error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
