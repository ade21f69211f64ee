package interceptors

import (
	"log/slog"
	"net/http"
	"time"
)

// WithLogging — логирование исходящих запросов.
// Поведение:
//   - enabled=false делает интерсептор no-op (флаг enableLogs профиля окружения);
//   - пишет одну финальную запись: msg="partner_http", method, path, status, dur;
//   - при сетевой ошибке — уровень Warn и поле err.
//
// Безопасность: не логирует payload, query и заголовки (там могут быть токен и CPF).
func WithLogging(base *slog.Logger, enabled bool) Interceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		if !enabled {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			l := base.With(
				slog.String("request_id", r.Header.Get("X-Request-Id")),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("partner_http",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("partner_http",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
