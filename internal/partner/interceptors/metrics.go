package interceptors

import (
	"net/http"
	"strconv"
	"time"
)

// Observer принимает наблюдения по исходящим запросам (реализация — internal/metrics).
type Observer interface {
	ObservePartnerRequest(method, code string, dur time.Duration)
}

// WithMetrics отдаёт в Observer метод, код ответа ("error" при сетевой ошибке) и длительность.
func WithMetrics(o Observer) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if o == nil {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			code := "error"
			if err == nil {
				code = strconv.Itoa(resp.StatusCode)
			}
			o.ObservePartnerRequest(r.Method, code, time.Since(start))

			return resp, err
		})
	}
}
