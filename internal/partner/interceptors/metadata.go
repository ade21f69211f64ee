package interceptors

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
)

// RequestIDFrom возвращает request id из контекста (если его положил HTTP-мидлвар).
func RequestIDFrom(ctx context.Context) string {
	if v := ctx.Value(CtxRequestID); v != nil {
		if rid, _ := v.(string); rid != "" {
			return rid
		}
	}

	return ""
}

// WithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (из контекста или новый uuid);
//   - User-Agent (если передан параметром);
//   - Accept: application/json (если не задан вызывающим).
//
// Исходный *http.Request не мутируется: RoundTripper обязан работать с клоном.
func WithMetadata(userAgent string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())

			if r.Header.Get("X-Request-Id") == "" {
				rid := RequestIDFrom(r.Context())
				if rid == "" {
					rid = uuid.NewString()
				}
				r.Header.Set("X-Request-Id", rid)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}
			if r.Header.Get("Accept") == "" {
				r.Header.Set("Accept", "application/json")
			}

			return next.RoundTrip(r)
		})
	}
}
