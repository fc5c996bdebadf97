package middleware

import (
	"log/slog"
	"net/http"
	"runtime"
)

// stackSize caps the stack trace captured on panic.
const stackSize = 4096

// Recover converts handler panics into a 500 response. The panic and a
// truncated stack reach the diagnostic sink; the visitor gets a plain
// error page, never a dead connection.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, stackSize)
					n := runtime.Stack(stack, false)

					log.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(stack[:n])),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
