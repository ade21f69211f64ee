package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPObserver принимает наблюдения по входящим запросам (реализация — internal/metrics).
type HTTPObserver interface {
	ObserveHTTPRequest(route, method string, code int, dur time.Duration)
}

// Metrics отдаёт в HTTPObserver шаблон маршрута chi, метод, статус и длительность.
// Шаблон вместо сырого пути не раздувает кардинальность id в URL.
func Metrics(o HTTPObserver) Middleware {
	return func(next http.Handler) http.Handler {
		if o == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}

			o.ObserveHTTPRequest(route, r.Method, sw.code(), time.Since(start))
		})
	}
}
