package interceptors

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter строит лимитер на perMinute запросов в минуту.
// perMinute <= 0 — лимит отключён (nil).
func NewLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}

	burst := perMinute / 60
	if burst < 1 {
		burst = 1
	}

	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// WithRateLimit ждёт токен лимитера перед отправкой. Ожидание уважает контекст запроса.
func WithRateLimit(l *rate.Limiter) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if l == nil {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if err := l.Wait(r.Context()); err != nil {
				return nil, err
			}

			return next.RoundTrip(r)
		})
	}
}
