package interceptors

import (
	"context"
	"io"
	"net/http"
	"time"
)

// WithTimeout навешивает дедлайн d на запрос при его отсутствии.
//
// Контракт:
//  1. d <= 0 — запрос уходит без изменения контекста;
//  2. deadline уже задан — не модифицируется;
//  3. иначе cancel вызывается при закрытии тела ответа (или сразу при ошибке),
//     чтобы вызывающий успел дочитать body.
func WithTimeout(d time.Duration) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if _, ok := r.Context().Deadline(); ok {
				return next.RoundTrip(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
