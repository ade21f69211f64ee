package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/brunosoares877/Crefaz/internal/http/errors"
	logctx "github.com/brunosoares877/Crefaz/internal/pkg/log"
)

// Recover перехватывает panic и отвечает 500 без деталей.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logctx.From(r.Context()).
						LogAttrs(r.Context(), slog.LevelError, "panic",
							slog.String("path", r.URL.Path),
							slog.Any("reason", rec),
						)
					apierrors.WriteError(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
