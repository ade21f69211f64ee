package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/brunosoares877/Crefaz/internal/http/errors"
	logctx "github.com/brunosoares877/Crefaz/internal/pkg/log"
)

// AdminBearer пропускает запрос, только если Authorization содержит
// Bearer-токен, совпадающий с token. Пустой token закрывает маршрут для всех.
func AdminBearer(token string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && subtle.ConstantTimeCompare([]byte(bearer(r)), []byte(token)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "admin_denied",
				slog.String("path", r.URL.Path),
			)
			apierrors.Write(w, http.StatusUnauthorized, apierrors.ErrorResponse{
				Message:   "Não autorizado",
				Code:      "unauthenticated",
				RequestID: r.Header.Get("X-Request-Id"),
			})
		})
	}
}

// bearer извлекает "сырой" токен из заголовка Authorization.
func bearer(r *http.Request) string {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
